package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/cache"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/gemini"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/postgres"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/rabbitmq"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/reports"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/supabase"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/availability_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/booking_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/dashboard_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/intake_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/matcher_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/mirror_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/report_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/session_service"
)

const searchSessionsSize = 1024

// application holds every wired service of one process.
type application struct {
	cfg        *config.Config
	logger     out.LoggerPort
	instanceID string

	mirror         *mirror_service.Mirror
	matcher        *matcher_service.MatcherService
	searchSessions *matcher_service.Sessions
	availability   *availability_service.AvailabilityService
	booking        *booking_service.BookingService
	sessions       *session_service.SessionService
	dashboard      *dashboard_service.DashboardService
	reports        *report_service.ReportService
	intake         *intake_service.IntakeService

	closers []func()
}

func newApplication(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*application, error) {
	app := &application{
		cfg:        cfg,
		logger:     logger,
		instanceID: uuid.NewString(),
	}

	storePort, err := app.newStore(ctx)
	if err != nil {
		return nil, err
	}

	app.mirror = mirror_service.NewMirror(storePort, logger)

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewCacheAdapter(cfg, logger)
		if err != nil {
			return nil, err
		}
		cachePort = cacheAdapter
	}

	catalogue, err := availability_service.BuildCatalogue(cfg.Slots.Windows, cfg.Slots.Minutes)
	if err != nil {
		return nil, err
	}
	app.availability = availability_service.NewAvailabilityService(
		catalogue,
		cfg.Slots.HorizonDays,
		config.TimeZone,
		app.mirror,
		cachePort,
		logger,
	)
	// Кэш слотов выводится из зеркала и сбрасывается при каждой перезагрузке
	app.mirror.OnReload(func(ctx context.Context, _ mirror_service.Snapshot) {
		app.availability.InvalidateCache(ctx)
	})

	var eventPort out.EventPort
	if cfg.RabbitMQ.Enabled {
		publisher, err := rabbitmq.NewEventPublisher(cfg, app.instanceID, logger)
		if err != nil {
			return nil, err
		}
		eventPort = publisher
		app.closers = append(app.closers, func() { _ = publisher.Close() })
	}

	var classifierPort out.ClassifierPort
	if cfg.AIConfigured() {
		classifierPort = gemini.NewGeminiAdapter(cfg, logger)
	} else {
		logger.Warn("app.ai.not_configured", out.LogFields{
			"message": "AI search will fall back to keyword matching",
		})
	}
	app.matcher = matcher_service.NewMatcherService(classifierPort, logger)

	app.searchSessions, err = matcher_service.NewSessions(searchSessionsSize)
	if err != nil {
		return nil, err
	}

	app.booking = booking_service.NewBookingService(storePort, eventPort, app.mirror, app.availability, logger)

	app.sessions = session_service.NewSessionService(
		session_service.NewVerifier(cfg.Auth.HashMode),
		session_service.AdminAccount{
			Username: cfg.Auth.AdminUsername,
			Password: cfg.Auth.AdminPassword,
		},
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		logger,
	)

	app.dashboard = dashboard_service.NewDashboardService(app.mirror, config.TimeZone)

	reportPort, err := app.newReportStore(ctx)
	if err != nil {
		return nil, err
	}
	app.reports = report_service.NewReportService(reportPort, logger)

	app.intake = intake_service.NewIntakeService(app.matcher, app.mirror, intake_service.SleepDelayer{}, logger)

	if err := app.mirror.Reload(ctx); err != nil {
		logger.Warn("app.mirror.offline", out.LogFields{
			"error": err.Error(),
		})
	}

	return app, nil
}

func (app *application) newStore(ctx context.Context) (out.RemoteStorePort, error) {
	switch app.cfg.Store.Driver {
	case config.StoreDriverPostgres:
		adapter, err := postgres.NewPostgresAdapter(ctx, app.cfg, app.logger)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, adapter.Close)
		return adapter, nil
	default:
		adapter, err := supabase.NewSupabaseAdapter(app.cfg, app.logger)
		if domain.IsType(err, domain.ErrorTypeNotConfigured) {
			app.logger.Warn("app.store.not_configured", out.LogFields{
				"message": "running on the built-in roster",
			})
			return unconfiguredStore{}, nil
		}
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}
}

func (app *application) newReportStore(ctx context.Context) (out.ReportPort, error) {
	if app.cfg.Redis.URL == "" {
		return reports.NewMemoryAdapter(app.cfg.Redis.Reports)
	}
	adapter, err := reports.NewRedisAdapter(ctx, app.cfg.Redis.URL, app.logger)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() { _ = adapter.Close() })
	return adapter, nil
}

func (app *application) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
}

var errStoreNotConfigured = domain.NewNotConfiguredError("remote store is not configured")

// unconfiguredStore keeps the process usable without credentials: the mirror
// goes offline and every write is refused.
type unconfiguredStore struct{}

func (unconfiguredStore) ListSpecialists(context.Context) ([]domain.Specialist, error) {
	return nil, errStoreNotConfigured
}

func (unconfiguredStore) ListAppointments(context.Context) ([]domain.Appointment, error) {
	return nil, errStoreNotConfigured
}

func (unconfiguredStore) InsertAppointment(context.Context, domain.NewAppointment) error {
	return errStoreNotConfigured
}

func (unconfiguredStore) DeleteAppointment(context.Context, json_types.FlexID) error {
	return errStoreNotConfigured
}
