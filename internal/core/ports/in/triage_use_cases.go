package in

import (
	"context"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/booking_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/intake_service"
)

type RosterUseCase interface {
	Specialists() []domain.Specialist
}

type MatchUseCase interface {
	Match(ctx context.Context, query string, mode domain.SearchMode, roster []domain.Specialist) domain.MatchResult
}

type AvailabilityUseCase interface {
	OfferableDates(today time.Time) []domain.OfferableDate
	SlotsFor(ctx context.Context, doctor, date string) []domain.Slot
}

type BookingUseCase interface {
	Submit(ctx context.Context, req booking_service.BookingRequest) (*domain.Appointment, error)
	Resolve(ctx context.Context, principal domain.Principal, appointmentID json_types.FlexID) error
	Cancel(ctx context.Context, appointmentID json_types.FlexID) error
}

type SessionUseCase interface {
	Authenticate(username, secret string, roster []domain.Specialist) (*domain.Principal, error)
	IssueToken(principal domain.Principal) (string, error)
	ParseToken(raw string) (*domain.Principal, error)
}

type DashboardUseCase interface {
	DoctorDashboard(principal domain.Principal) domain.DoctorDashboard
	AdminTable() domain.AdminTable
}

type ReportUseCase interface {
	GetReport(ctx context.Context, patient string) (domain.PatientReport, error)
	SaveReport(ctx context.Context, report domain.PatientReport) (domain.PatientReport, error)
}

type IntakeUseCase interface {
	Run(ctx context.Context, kind intake_service.Kind, mode domain.SearchMode, emit func(intake_service.Update)) (domain.MatchResult, error)
}
