package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/saasadmin/internal/admin/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve starts the web server",
		Long:  `Launch the HTTP API, applying migrations first. Settings are read from the environment.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run()
}
