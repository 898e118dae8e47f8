package command

import (
	"context"
	"errors"

	"eventteam/internal/app"

	"github.com/spf13/cobra"
)

// resetPasswordCmd sets a password without going through the API, for a
// locked-out super admin.
var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set the password of an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		if username == "" {
			return errors.New("--username is required")
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if password == "" {
				password = a.Config.DefaultPassword
			}
			if err := a.Services.Users.SetPassword(ctx, username, password); err != nil {
				return err
			}
			success(cmd, "Password updated for %s", username)
			return nil
		})
	},
}

// pruneSessionsCmd deletes expired sessions from the database store.
var pruneSessionsCmd = &cobra.Command{
	Use:   "prune-sessions",
	Short: "Delete expired sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			n, err := a.Services.Auth.PruneSessions(ctx)
			if err != nil {
				return err
			}
			success(cmd, "Removed %d expired sessions", n)
			return nil
		})
	},
}

func init() {
	resetPasswordCmd.Flags().String("username", "", "account to update")
	resetPasswordCmd.Flags().String("password", "", "new password (defaults to DEFAULT_PASSWORD)")

	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(pruneSessionsCmd)
}
