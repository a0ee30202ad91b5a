package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the admin command tree. Configuration comes from the
// environment; see app.Config.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "admin",
		Short: "SaaS admin service",
		Long:  `Multi-tenant administration backend. Without a subcommand it runs the HTTP server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newRolesCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
