package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent sync runs",
	Long:  `Lists the most recent scheduled sync runs, newest first.`,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 10, "Number of runs to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	history, err := scheduler.History(cmd.Context(), statusLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(history) == 0 {
		cmd.Println("No sync runs recorded.")
		return nil
	}

	for i := range history {
		r := &history[i]
		state := "ok"
		if !r.Success {
			state = "FAILED"
		}
		cmd.Printf("%s  %-6s  +%d ~%d -%d (skipped %d)  %s\n",
			r.StartedAt.Local().Format(time.DateTime), state,
			r.Added, r.Updated, r.Deleted, r.Skipped,
			r.EndedAt.Sub(r.StartedAt).Round(time.Millisecond))
		if r.Error != "" {
			cmd.Printf("    %s\n", r.Error)
		}
	}
	return nil
}
