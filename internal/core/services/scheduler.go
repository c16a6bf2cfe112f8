package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// HistoryRetention is the number of task results kept per task.
const HistoryRetention = 100

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs the document sync on a cron schedule. Overlapping runs
// are skipped.
type Scheduler struct {
	settings domain.SchedulerSettings
	store    driven.SchedulerStore
	syncOrch driving.SyncOrchestrator

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	settings domain.SchedulerSettings,
	store driven.SchedulerStore,
	syncOrch driving.SyncOrchestrator,
) *Scheduler {
	return &Scheduler{
		settings: settings,
		store:    store,
		syncOrch: syncOrch,
	}
}

// ParseSchedule parses a standard five-field cron spec or a descriptor
// such as "@hourly" or "@every 30m".
func ParseSchedule(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return sched, nil
}

// Start runs the scheduler until the context is cancelled or Stop is called.
// A run that was due while the scheduler was down starts immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.settings.Enabled {
		logger.Info("scheduler: disabled")
		return nil
	}

	sched, err := ParseSchedule(s.settings.Schedule)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()
	defer close(doneCh)

	task, err := s.ensureTask(ctx, sched)
	if err != nil {
		logger.Warn("scheduler: failed to initialise task: %v", err)
	}

	cl := cronLogger{}
	c := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	id := c.Schedule(sched, cron.FuncJob(func() { s.runJob(ctx, sched) }))
	c.Start()
	logger.Info("scheduler: document sync scheduled %q, next run %s",
		s.settings.Schedule, sched.Next(time.Now()).Format(time.RFC3339))

	if task != nil && !task.NextRun.IsZero() && !task.NextRun.After(time.Now()) {
		logger.Info("scheduler: run overdue since %s, starting now", task.NextRun.Format(time.RFC3339))
		go c.Entry(id).WrappedJob.Run()
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case <-stopCh:
	}

	// Wait for a running sync to finish
	<-c.Stop().Done()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return runErr
}

// Stop gracefully shuts down the scheduler, waiting for a running sync.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
	return nil
}

// History returns the most recent sync results, newest first.
func (s *Scheduler) History(ctx context.Context, limit int) ([]domain.TaskResult, error) {
	return s.store.GetTaskHistory(ctx, domain.TaskIDDocumentSync, limit)
}

// ensureTask creates or updates the stored task for the schedule.
func (s *Scheduler) ensureTask(ctx context.Context, sched cron.Schedule) (*domain.ScheduledTask, error) {
	task, err := s.store.GetTask(ctx, domain.TaskIDDocumentSync)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch {
	case task == nil:
		task = &domain.ScheduledTask{
			ID:       domain.TaskIDDocumentSync,
			Name:     "Document Sync",
			Schedule: s.settings.Schedule,
			NextRun:  sched.Next(now),
		}
	case task.Schedule != s.settings.Schedule:
		task.Schedule = s.settings.Schedule
		task.NextRun = sched.Next(now)
	}
	task.Enabled = true

	return task, s.store.SaveTask(ctx, task)
}

func (s *Scheduler) runJob(ctx context.Context, sched cron.Schedule) {
	if _, err := s.RunOnce(ctx, sched); err != nil && !errors.Is(err, domain.ErrSyncInProgress) {
		logger.Error("scheduler: %v", err)
	}
}

// RunOnce runs the document sync, records its result and updates the task.
// sched computes the next run and may be nil.
func (s *Scheduler) RunOnce(ctx context.Context, sched cron.Schedule) (*domain.TaskResult, error) {
	started := time.Now()
	report, err := s.syncOrch.SyncAll(ctx)
	if errors.Is(err, domain.ErrSyncInProgress) {
		logger.Info("scheduler: sync already running, skipping")
		return nil, err
	}

	var result *domain.TaskResult
	if report != nil {
		result = domain.NewTaskResult(domain.TaskIDDocumentSync, report)
	} else {
		result = &domain.TaskResult{TaskID: domain.TaskIDDocumentSync, StartedAt: started, EndedAt: time.Now()}
	}
	if err != nil {
		result.Success = false
		result.Error = err.Error()
	}

	// The store calls still run after cancellation so the result is kept.
	storeCtx := context.WithoutCancel(ctx)
	s.updateTask(storeCtx, result, sched)

	if err := s.store.RecordResult(storeCtx, result); err != nil {
		logger.Warn("scheduler: failed to record result: %v", err)
	}
	if err := s.store.PruneHistory(storeCtx, HistoryRetention); err != nil {
		logger.Warn("scheduler: failed to prune history: %v", err)
	}

	return result, err
}

func (s *Scheduler) updateTask(ctx context.Context, result *domain.TaskResult, sched cron.Schedule) {
	task, err := s.store.GetTask(ctx, domain.TaskIDDocumentSync)
	if err != nil {
		logger.Warn("scheduler: failed to load task: %v", err)
		return
	}
	if task == nil {
		task = &domain.ScheduledTask{
			ID:       domain.TaskIDDocumentSync,
			Name:     "Document Sync",
			Schedule: s.settings.Schedule,
			Enabled:  s.settings.Enabled,
		}
	}

	task.LastRun = result.StartedAt
	if sched != nil {
		task.NextRun = sched.Next(result.EndedAt)
	}
	if result.Success {
		task.LastError = ""
		task.LastSuccess = result.EndedAt
	} else {
		task.LastError = result.Error
	}

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Warn("scheduler: failed to save task: %v", err)
	}
}

// cronLogger routes cron's own messages to the application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debug("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
