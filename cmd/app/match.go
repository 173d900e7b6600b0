package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

func matchCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "match [symptoms...]",
		Short: "Match a symptom description against the specialist roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			searchMode, err := domain.ParseSearchMode(mode)
			if err != nil {
				return err
			}

			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := newApplication(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			result := app.matcher.Match(ctx, strings.Join(args, " "), searchMode, app.mirror.Specialists())

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(domain.SearchModeAI), "search mode: ai or keyword")
	return cmd
}
