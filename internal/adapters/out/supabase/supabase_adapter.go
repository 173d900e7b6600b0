package supabase

import (
	"context"
	"errors"
	"net/url"

	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
	supa "github.com/supabase-community/supabase-go"
)

type SupabaseAdapter struct {
	client *supa.Client
	logger out.LoggerPort
}

func NewSupabaseAdapter(cfg *config.Config, logger out.LoggerPort) (*SupabaseAdapter, error) {
	if cfg.Store.SupabaseURL == "" || cfg.Store.SupabaseKey == "" {
		return nil, domain.NewNotConfiguredError("SUPABASE_URL and SUPABASE_KEY are required")
	}

	client, err := supa.NewClient(cfg.Store.SupabaseURL, cfg.Store.SupabaseKey, nil)
	if err != nil {
		return nil, err
	}

	return &SupabaseAdapter{
		client: client,
		logger: logger.WithModule("SupabaseAdapter"),
	}, nil
}

func (a *SupabaseAdapter) ListSpecialists(ctx context.Context) ([]domain.Specialist, error) {
	a.logger.Debug("supabase.doctors.fetch", out.LogFields{})

	data, _, err := a.client.From(doctorsTable).Select("*", "", false).Execute()
	if err != nil {
		a.logger.Error("supabase.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, classify("fetch doctors", err)
	}

	return decodeSpecialists(data)
}

func (a *SupabaseAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	a.logger.Debug("supabase.appointments.fetch", out.LogFields{})

	data, _, err := a.client.From(appointmentsTable).Select("*", "", false).Execute()
	if err != nil {
		a.logger.Error("supabase.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, classify("fetch appointments", err)
	}

	return decodeAppointments(data)
}

func (a *SupabaseAdapter) InsertAppointment(ctx context.Context, appointment domain.NewAppointment) error {
	row := encodeAppointment(appointment)

	_, _, err := a.client.From(appointmentsTable).Insert(row, false, "", "", "").Execute()
	if err != nil {
		a.logger.Error("supabase.appointments.insert_failed", out.LogFields{
			"doctor": row.DoctorName,
			"date":   row.DateBooked,
			"time":   row.TimeBooked,
			"error":  err.Error(),
		})
		return classify("insert appointment", err)
	}

	a.logger.Info("supabase.appointments.inserted", out.LogFields{
		"doctor": row.DoctorName,
		"date":   row.DateBooked,
		"time":   row.TimeBooked,
	})
	return nil
}

func (a *SupabaseAdapter) DeleteAppointment(ctx context.Context, appointmentID json_types.FlexID) error {
	_, _, err := a.client.From(appointmentsTable).Delete("", "").Eq("id", appointmentID.String()).Execute()
	if err != nil {
		a.logger.Error("supabase.appointments.delete_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return classify("delete appointment", err)
	}

	a.logger.Info("supabase.appointments.deleted", out.LogFields{
		"appointmentId": appointmentID,
	})
	return nil
}

// classify separates transport failures from errors reported by PostgREST.
func classify(message string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.NewNetworkError(message, err)
	}
	return domain.NewUpstreamError(message, err)
}
