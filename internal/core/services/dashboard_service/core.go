package dashboard_service

import (
	"fmt"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

type AppointmentSource interface {
	Appointments() []domain.Appointment
}

type DashboardService struct {
	source   AppointmentSource
	location *time.Location
	now      func() time.Time
}

func NewDashboardService(source AppointmentSource, location *time.Location) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		source:   source,
		location: location,
		now:      time.Now,
	}
}

// DoctorDashboard builds the logged-in doctor's view from the current mirror.
// Waiting mirrors Total until appointments carry a status.
func (s *DashboardService) DoctorDashboard(principal domain.Principal) domain.DoctorDashboard {
	mine := domain.AppointmentsForDoctor(s.source.Appointments(), principal.Name)
	today := json_types.FormatCalendarDate(s.now().In(s.location))

	todayCount := 0
	for _, appointment := range mine {
		if appointment.Date == today {
			todayCount++
		}
	}

	return domain.DoctorDashboard{
		Title:        fmt.Sprintf("Welcome back, %s", principal.Name),
		Total:        len(mine),
		Waiting:      len(mine),
		Today:        todayCount,
		Appointments: mine,
	}
}

func (s *DashboardService) AdminTable() domain.AdminTable {
	appointments := s.source.Appointments()
	if appointments == nil {
		appointments = []domain.Appointment{}
	}
	return domain.AdminTable{
		Appointments: appointments,
		Empty:        len(appointments) == 0,
	}
}
