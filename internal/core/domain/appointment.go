package domain

import (
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

// Appointment carries the doctor's display name and specialty denormalised,
// there is no foreign key to the doctors collection.
type Appointment struct {
	ID        json_types.FlexID    `json:"id"`
	Patient   string               `json:"patient"`
	Doctor    string               `json:"doctor"`
	Specialty string               `json:"specialty"`
	Date      string               `json:"date"`
	Time      json_types.ClockTime `json:"time"`
}

type NewAppointment struct {
	Patient   string
	Doctor    string
	Specialty string
	Date      string
	Time      json_types.ClockTime
}

// Occupies reports whether the appointment holds the doctor's slot at date/time.
func (a Appointment) Occupies(doctor, date string, slotTime json_types.ClockTime) bool {
	if a.Doctor != doctor || a.Date != date {
		return false
	}
	return json_types.NewClockTime(string(a.Time)) == slotTime
}

func AppointmentsForDoctor(appointments []Appointment, doctor string) []Appointment {
	result := make([]Appointment, 0)
	for _, appointment := range appointments {
		if appointment.Doctor == doctor {
			result = append(result, appointment)
		}
	}
	return result
}
