package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/session_service"
)

// hashCmd prints a bcrypt hash for seeding doctors.password when AUTH_HASH_MODE=bcrypt.
func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <secret>",
		Short: "Print the bcrypt hash of a login secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := session_service.HashSecret(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
