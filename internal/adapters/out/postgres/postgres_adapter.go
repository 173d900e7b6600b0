package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

type PostgresAdapter struct {
	pool   *pgxpool.Pool
	logger out.LoggerPort
}

func NewPostgresAdapter(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*PostgresAdapter, error) {
	if cfg.Store.DatabaseURL == "" {
		return nil, domain.NewNotConfiguredError("DATABASE_URL is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Store.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, Migration); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &PostgresAdapter{
		pool:   pool,
		logger: logger.WithModule("PostgresAdapter"),
	}, nil
}

func (a *PostgresAdapter) Close() {
	a.pool.Close()
}

func (a *PostgresAdapter) ListSpecialists(ctx context.Context) ([]domain.Specialist, error) {
	rows, err := a.pool.Query(ctx, selectDoctorsQuery)
	if err != nil {
		a.logger.Error("postgres.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, classify("fetch doctors", err)
	}

	specialists, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Specialist, error) {
		var (
			id         int64
			specialist domain.Specialist
		)
		err := row.Scan(
			&id,
			&specialist.Name,
			&specialist.Username,
			&specialist.Password,
			&specialist.Specialty,
			&specialist.Keywords,
			&specialist.Rating,
			&specialist.Image,
		)
		specialist.ID = json_types.FlexID(strconv.FormatInt(id, 10))
		return specialist, err
	})
	if err != nil {
		return nil, classify("scan doctors", err)
	}

	return specialists, nil
}

func (a *PostgresAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	rows, err := a.pool.Query(ctx, selectAppointmentsQuery)
	if err != nil {
		a.logger.Error("postgres.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, classify("fetch appointments", err)
	}

	appointments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Appointment, error) {
		var (
			id          int64
			timeBooked  *string
			appointment domain.Appointment
		)
		err := row.Scan(
			&id,
			&appointment.Patient,
			&appointment.Doctor,
			&appointment.Specialty,
			&appointment.Date,
			&timeBooked,
		)
		appointment.ID = json_types.FlexID(strconv.FormatInt(id, 10))
		if timeBooked != nil {
			appointment.Time = json_types.NewClockTime(*timeBooked)
		}
		return appointment, err
	})
	if err != nil {
		return nil, classify("scan appointments", err)
	}

	return appointments, nil
}

func (a *PostgresAdapter) InsertAppointment(ctx context.Context, appointment domain.NewAppointment) error {
	_, err := a.pool.Exec(ctx, insertAppointmentQuery,
		appointment.Patient,
		appointment.Doctor,
		appointment.Specialty,
		appointment.Date,
		appointment.Time.String(),
	)
	if err != nil {
		a.logger.Error("postgres.appointments.insert_failed", out.LogFields{
			"doctor": appointment.Doctor,
			"date":   appointment.Date,
			"time":   appointment.Time,
			"error":  err.Error(),
		})
		return classify("insert appointment", err)
	}
	return nil
}

func (a *PostgresAdapter) DeleteAppointment(ctx context.Context, appointmentID json_types.FlexID) error {
	id, err := strconv.ParseInt(appointmentID.String(), 10, 64)
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid appointment id %q", appointmentID))
	}

	if _, err := a.pool.Exec(ctx, deleteAppointmentQuery, id); err != nil {
		a.logger.Error("postgres.appointments.delete_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return classify("delete appointment", err)
	}
	return nil
}

// classify maps driver errors onto the store's error types.
func classify(message string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			return domain.NewConflictError("this time slot is already booked")
		}
		return domain.NewUpstreamError(message, err)
	}
	return domain.NewNetworkError(message, err)
}
