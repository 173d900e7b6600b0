package domain

import "time"

type PatientReport struct {
	Patient   string    `json:"patient"`
	Notes     string    `json:"notes"`
	Diagnosis string    `json:"diagnosis"`
	Rx        string    `json:"rx"`
	Timestamp time.Time `json:"timestamp"`
}

type DoctorDashboard struct {
	Title        string        `json:"title"`
	Total        int           `json:"total"`
	Waiting      int           `json:"waiting"`
	Today        int           `json:"today"`
	Appointments []Appointment `json:"appointments"`
}

type AdminTable struct {
	Appointments []Appointment `json:"appointments"`
	Empty        bool          `json:"empty"`
}
