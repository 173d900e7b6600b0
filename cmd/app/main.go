package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suchimauz/specialist-triage-booking/internal/adapters/out/logger"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "triage",
		Short: "Symptom triage and specialist booking service",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(slotsCmd())
	rootCmd.AddCommand(hashCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap загружает конфигурацию и создаёт логгер с таймзоной
func bootstrap() (*config.Config, out.LoggerPort, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, cfg.IsLocal())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, mainLogger, nil
}
