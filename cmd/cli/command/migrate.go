package command

import (
	"context"

	"eventteam/internal/app"

	"github.com/spf13/cobra"
)

// migrateCmd applies the schema; connecting already migrates, so this only reports.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			success(cmd, "Schema is up to date (%s)", a.Config.DatabaseDriver)
			return nil
		})
	},
}

// bootstrapCmd creates the super admin when it is missing.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Ensure the super admin account exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			user, created, err := a.Services.Users.EnsureSuperAdmin(ctx)
			if err != nil {
				return err
			}
			if created {
				success(cmd, "Created super admin %q with the default password", user.Username)
				return nil
			}
			success(cmd, "Super admin %q already exists", user.Username)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(bootstrapCmd)
}
