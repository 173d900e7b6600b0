package supabase

import (
	"encoding/json"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

const (
	doctorsTable      = "doctors"
	appointmentsTable = "appointments"
)

type doctorRow struct {
	ID        json_types.FlexID `json:"id"`
	Name      string            `json:"name"`
	Username  string            `json:"username"`
	Password  string            `json:"password"`
	Specialty string            `json:"specialty"`
	Keywords  []string          `json:"keywords"`
	Rating    float64           `json:"rating"`
	Img       string            `json:"img"`
}

type appointmentRow struct {
	ID          json_types.FlexID    `json:"id"`
	PatientName string               `json:"patient_name"`
	DoctorName  string               `json:"doctor_name"`
	Specialty   string               `json:"specialty"`
	DateBooked  string               `json:"date_booked"`
	TimeBooked  json_types.ClockTime `json:"time_booked"`
}

type appointmentInsertRow struct {
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
	Specialty   string `json:"specialty"`
	DateBooked  string `json:"date_booked"`
	TimeBooked  string `json:"time_booked"`
}

func decodeSpecialists(data []byte) ([]domain.Specialist, error) {
	var rows []doctorRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, domain.NewUpstreamError("decode doctors", err)
	}

	specialists := make([]domain.Specialist, 0, len(rows))
	for _, row := range rows {
		keywords := row.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		specialists = append(specialists, domain.Specialist{
			ID:        row.ID,
			Name:      row.Name,
			Username:  row.Username,
			Password:  row.Password,
			Specialty: row.Specialty,
			Keywords:  keywords,
			Rating:    row.Rating,
			Image:     row.Img,
		})
	}
	return specialists, nil
}

// decodeAppointments renames the storage columns. time_booked may carry
// seconds or be null; ClockTime trims it to HH:MM.
func decodeAppointments(data []byte) ([]domain.Appointment, error) {
	var rows []appointmentRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, domain.NewUpstreamError("decode appointments", err)
	}

	appointments := make([]domain.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, domain.Appointment{
			ID:        row.ID,
			Patient:   row.PatientName,
			Doctor:    row.DoctorName,
			Specialty: row.Specialty,
			Date:      row.DateBooked,
			Time:      row.TimeBooked,
		})
	}
	return appointments, nil
}

func encodeAppointment(appointment domain.NewAppointment) appointmentInsertRow {
	return appointmentInsertRow{
		PatientName: appointment.Patient,
		DoctorName:  appointment.Doctor,
		Specialty:   appointment.Specialty,
		DateBooked:  appointment.Date,
		TimeBooked:  appointment.Time.String(),
	}
}
