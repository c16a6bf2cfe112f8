package driving

import (
	"context"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// Scheduler runs the document sync on a cron schedule.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the scheduler, waiting for a running sync.
	Stop() error

	// History returns the most recent run results, newest first.
	History(ctx context.Context, limit int) ([]domain.TaskResult, error)
}
