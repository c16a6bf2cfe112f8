package domain

import "time"

// TaskIDDocumentSync identifies the scheduled document sync.
const TaskIDDocumentSync = "document_sync"

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Schedule is the cron spec the task runs on.
	Schedule string

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// RunID links to the sync run that produced the result.
	RunID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether every source synced without error.
	Success bool

	// Error contains the error summary if Success is false.
	Error string

	// Added, Updated, Deleted and Skipped are the summed document counts.
	Added   int
	Updated int
	Deleted int
	Skipped int
}

// NewTaskResult summarises a sync report as a task result.
func NewTaskResult(taskID string, report *SyncReport) *TaskResult {
	totals := report.Totals()
	result := &TaskResult{
		TaskID:    taskID,
		RunID:     report.RunID,
		StartedAt: report.StartedAt,
		EndedAt:   report.EndedAt,
		Success:   report.FailedSources() == 0,
		Added:     totals.Added,
		Updated:   totals.Updated,
		Deleted:   totals.Deleted,
		Skipped:   totals.Skipped,
	}
	for _, s := range report.Sources {
		if s.Failed() {
			if result.Error != "" {
				result.Error += "; "
			}
			result.Error += s.Label() + ": " + s.Err
		}
	}
	return result
}
