package postgres

// Migration creates both collections. The unique index closes the window
// between two clients booking the same slot at once.
const Migration = `
CREATE TABLE IF NOT EXISTS doctors (
    id        BIGSERIAL PRIMARY KEY,
    name      TEXT NOT NULL,
    username  TEXT NOT NULL DEFAULT '',
    password  TEXT NOT NULL DEFAULT '',
    specialty TEXT NOT NULL,
    keywords  TEXT[] NOT NULL DEFAULT '{}',
    rating    DOUBLE PRECISION NOT NULL DEFAULT 0,
    img       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS appointments (
    id           BIGSERIAL PRIMARY KEY,
    patient_name TEXT NOT NULL,
    doctor_name  TEXT NOT NULL,
    specialty    TEXT NOT NULL DEFAULT '',
    date_booked  DATE NOT NULL,
    time_booked  TIME
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_slot
    ON appointments (doctor_name, date_booked, time_booked);
`

const (
	selectDoctorsQuery = `SELECT id, name, username, password, specialty, keywords, rating, img
FROM doctors ORDER BY id`

	selectAppointmentsQuery = `SELECT id, patient_name, doctor_name, specialty, date_booked::text, time_booked::text
FROM appointments ORDER BY id`

	insertAppointmentQuery = `INSERT INTO appointments (patient_name, doctor_name, specialty, date_booked, time_booked)
VALUES ($1, $2, $3, $4::date, $5::time)`

	deleteAppointmentQuery = `DELETE FROM appointments WHERE id = $1`
)

const uniqueViolation = "23505"
