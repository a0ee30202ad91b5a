package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/saasadmin/internal/admin/app"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply every pending migration for the configured DATABASE_DRIVER and exit.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}

			st, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ApplyMigrations(); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.DatabaseDriver)
			return nil
		},
	}
}
