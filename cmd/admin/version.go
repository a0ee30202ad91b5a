package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/saasadmin/internal/admin/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get the application's version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "App Version: %s\n", app.BuildVersion)
		},
	}
}
