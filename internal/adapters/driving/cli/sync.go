package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

var syncCmd = &cobra.Command{
	Use:   "sync [connector]",
	Short: "Synchronise documents from sources",
	Long: `Runs the connectors once and reconciles the documents table.
If a connector type is given (sites, quicklinks, users), only that
connector runs. Otherwise all configured connectors run in order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()

	var (
		report *domain.SyncReport
		err    error
	)
	if len(args) > 0 {
		cmd.Printf("Synchronising %s...\n", args[0])
		report, err = syncOrchestrator.Sync(ctx, args[0])
	} else {
		cmd.Println("Synchronising all sources...")
		report, err = syncOrchestrator.SyncAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printReport(cmd, report)

	if n := report.FailedSources(); n > 0 {
		return fmt.Errorf("%d source(s) failed", n)
	}
	return nil
}

func printReport(cmd *cobra.Command, report *domain.SyncReport) {
	if len(report.Sources) == 0 {
		cmd.Println("No sources configured.")
		return
	}

	cmd.Println()
	for _, s := range report.Sources {
		if s.Failed() {
			cmd.Printf("  %-24s FAILED: %s\n", s.Label(), s.Err)
			continue
		}
		cmd.Printf("  %-24s %d added, %d updated, %d deleted, %d unchanged, %d skipped\n",
			s.Label(), s.Added, s.Updated, s.Deleted, s.Unchanged, s.Skipped)
	}

	t := report.Totals()
	cmd.Println()
	cmd.Printf("Run %s: %d added, %d updated, %d deleted in %s\n",
		report.RunID, t.Added, t.Updated, t.Deleted, report.EndedAt.Sub(report.StartedAt).Round(time.Millisecond))
}
