package command

// root.go defines the root command for the admin CLI and the shared setup
// every subcommand goes through.

import (
	"context"
	"fmt"
	"os"

	"eventteam/internal/app"
	"eventteam/internal/config"
	"eventteam/internal/logging"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	logLevel string // overrides LOG_LEVEL for CLI runs
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eventteam-cli",
	Short: "eventteam-cli - administration tool for the event team backend",
	Long: `eventteam-cli runs maintenance tasks directly against the database configured
in .env or the environment (DATABASE_DRIVER, DATABASE_URL, SESSION_BACKEND, ...):
- Apply the schema
- Create the super admin account
- Reset a forgotten password
- Remove expired sessions

Use "eventteam-cli command -h" to see the flags of a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

// withApp loads the configuration, connects, runs fn and closes everything.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), logLevel, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer a.Close()

	return fn(ctx, a)
}

func success(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}
