package out

import (
	"context"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

// RemoteStorePort is the authoritative store behind the local mirror.
// Implementations return *domain.AppError on failure.
type RemoteStorePort interface {
	// Коллекция doctors
	ListSpecialists(ctx context.Context) ([]domain.Specialist, error)

	// Коллекция appointments
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	InsertAppointment(ctx context.Context, appointment domain.NewAppointment) error
	DeleteAppointment(ctx context.Context, appointmentID json_types.FlexID) error
}
