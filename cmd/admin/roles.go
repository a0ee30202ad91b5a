package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/saasadmin/internal/admin/app"
	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
)

func newRolesCmd() *cobra.Command {
	rolesCmd := &cobra.Command{
		Use:   "roles",
		Short: "Inspect and add roles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoles(cmd.Context(), func(roles *service.RolesService) error {
				list, err := roles.List(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
				for _, r := range list {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Name, r.Description)
				}
				return w.Flush()
			})
		},
	}

	var name, description string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRoles(cmd.Context(), func(roles *service.RolesService) error {
				r, err := roles.Create(cmd.Context(), name, description)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "role %q created (%s)\n", r.Name, r.ID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "role name")
	addCmd.Flags().StringVar(&description, "description", "", "role description")
	_ = addCmd.MarkFlagRequired("name")

	rolesCmd.AddCommand(listCmd, addCmd)
	return rolesCmd
}

// withRoles opens the configured store, migrates it and hands fn a roles
// service bound to it.
func withRoles(ctx context.Context, fn func(*service.RolesService) error) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	st, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return fn(&service.RolesService{Store: st})
}
