package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/in/http"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, mainLogger, err := bootstrap()
	if err != nil {
		return err
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"storeDriver":     cfg.Store.Driver,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, mainLogger)
	if err != nil {
		logger.Error("app.init_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}
	defer app.Close()

	controllers := []http.Controller{
		http.NewSearchController(app.mirror, app.matcher, app.intake, app.searchSessions),
		http.NewBookingController(app.mirror, app.availability, app.booking, app.sessions),
		http.NewAccountController(app.mirror, app.sessions, app.dashboard, app.reports),
	}
	if cfg.Relay.Enabled {
		relay, err := http.NewRelayController(cfg, mainLogger)
		if err != nil {
			return err
		}
		controllers = append(controllers, relay)
	}

	router := http.NewRouter(mainLogger, http.NewHealthController(app.mirror, cfg.App.Version), controllers...)

	// RabbitMQ слушатель только если он включен
	listener, err := rabbitmq.NewMirrorListener(app.mirror, cfg, app.instanceID, mainLogger)
	if err != nil {
		logger.Error("app.rabbitmq.init_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}
	if listener != nil {
		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			return err
		}
		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	server := &nethttp.Server{
		Addr:    cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("app.http.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	case <-ctx.Done():
	}

	logger.Info("app.shutdown.initiated", out.LogFields{})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
