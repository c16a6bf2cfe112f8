// Package cli implements the sitesync command line on cobra.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// Services injected by main before Execute.
var (
	version = "dev"

	syncOrchestrator driving.SyncOrchestrator
	documentService  driving.DocumentService
	settingsService  driving.SettingsService
	scheduler        driving.Scheduler
	userService      driving.UserService
)

// Services holds the driving ports the commands use. Nil ports make the
// commands that need them fail with "not configured".
type Services struct {
	Sync      driving.SyncOrchestrator
	Documents driving.DocumentService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler
	Users     driving.UserService
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sitesync",
	Short: "Keep the search documents table in step with its sources",
	Long: `sitesync reconciles a local documents table with external sites,
the quick-links configuration and the user directory, and answers
access questions for the search index.

Run "sitesync serve" to sync on a schedule and expose the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute wires the services and runs the root command with ctx.
func Execute(ctx context.Context, v string, s Services) error {
	if v != "" {
		version = v
	}
	syncOrchestrator = s.Sync
	documentService = s.Documents
	settingsService = s.Settings
	scheduler = s.Scheduler
	userService = s.Users

	return rootCmd.ExecuteContext(ctx)
}
