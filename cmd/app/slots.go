package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/utils"
)

func slotsCmd() *cobra.Command {
	var (
		doctorID string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print offerable dates and the slot catalogue, or a doctor's slots for one date",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			if date == "" {
				return encoder.Encode(map[string]any{
					"dates":     app.availability.OfferableDates(utils.Today()),
					"catalogue": app.availability.Catalogue(),
				})
			}

			if _, err := utils.ParseDate(date); err != nil {
				return err
			}
			doctor, ok := domain.FindSpecialist(app.mirror.Specialists(), json_types.FlexID(doctorID))
			if !ok {
				return fmt.Errorf("specialist %q not found", doctorID)
			}
			return encoder.Encode(app.availability.SlotsFor(ctx, doctor.Name, date))
		},
	}

	cmd.Flags().StringVar(&doctorID, "doctor-id", "", "specialist id")
	cmd.Flags().StringVar(&date, "date", "", "calendar date YYYY-MM-DD")
	return cmd
}
