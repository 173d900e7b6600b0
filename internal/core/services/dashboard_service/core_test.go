package dashboard_service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

type staticAppointments []domain.Appointment

func (s staticAppointments) Appointments() []domain.Appointment {
	return s
}

func TestDoctorDashboard(t *testing.T) {
	source := staticAppointments{
		{ID: "1", Patient: "Ann", Doctor: "Dr. Sarah Chen", Date: "2025-01-10", Time: "09:00"},
		{ID: "2", Patient: "Bob", Doctor: "Dr. Sarah Chen", Date: "2025-01-12", Time: "10:00"},
		{ID: "3", Patient: "Cid", Doctor: "Dr. Lisa Park", Date: "2025-01-10", Time: "09:00"},
	}
	service := NewDashboardService(source, time.UTC)
	service.now = func() time.Time { return time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC) }

	dashboard := service.DoctorDashboard(domain.Principal{Role: domain.RoleDoctor, Name: "Dr. Sarah Chen"})

	assert.Equal(t, "Welcome back, Dr. Sarah Chen", dashboard.Title)
	assert.Equal(t, 2, dashboard.Total)
	assert.Equal(t, 2, dashboard.Waiting)
	assert.Equal(t, 1, dashboard.Today)
	assert.Len(t, dashboard.Appointments, 2)
}

func TestAdminTable(t *testing.T) {
	empty := NewDashboardService(staticAppointments(nil), time.UTC).AdminTable()
	assert.True(t, empty.Empty)
	assert.NotNil(t, empty.Appointments)

	table := NewDashboardService(staticAppointments{{ID: "1"}}, time.UTC).AdminTable()
	assert.False(t, table.Empty)
	assert.Len(t, table.Appointments, 1)
}
