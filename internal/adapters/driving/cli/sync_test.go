package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync [connector]", syncCmd.Use)
}

func TestSyncCmd_NotConfigured(t *testing.T) {
	withServices(t, Services{})

	_, err := execute(t, "sync")

	assert.ErrorContains(t, err, "not configured")
}

func TestSyncCmd_All(t *testing.T) {
	orch := &mockSyncOrchestrator{report: &domain.SyncReport{
		RunID:     "run-1",
		StartedAt: testTime,
		EndedAt:   testTime.Add(2 * time.Second),
		Sources: []domain.SourceReport{
			{Source: "site:a", Added: 2, Updated: 1},
			{Source: domain.SourceUsers, Unchanged: 4},
		},
	}}
	withServices(t, Services{Sync: orch})

	out, err := execute(t, "sync")

	require.NoError(t, err)
	assert.Contains(t, out, "Synchronising all sources...")
	assert.Contains(t, out, "site:a")
	assert.Contains(t, out, "2 added, 1 updated, 0 deleted, 0 unchanged, 0 skipped")
	assert.Contains(t, out, "Run run-1: 2 added, 1 updated, 0 deleted in 2s")
}

func TestSyncCmd_SingleConnector(t *testing.T) {
	orch := &mockSyncOrchestrator{report: &domain.SyncReport{RunID: "run-2"}}
	withServices(t, Services{Sync: orch})

	out, err := execute(t, "sync", "quicklinks")

	require.NoError(t, err)
	assert.Equal(t, "quicklinks", orch.lastType)
	assert.Contains(t, out, "Synchronising quicklinks...")
	assert.Contains(t, out, "No sources configured.")
}

func TestSyncCmd_FailedSource(t *testing.T) {
	orch := &mockSyncOrchestrator{report: &domain.SyncReport{
		Sources: []domain.SourceReport{
			{Origin: "https://down.example.org", Err: "fetch failed"},
		},
	}}
	withServices(t, Services{Sync: orch})

	out, err := execute(t, "sync")

	assert.ErrorContains(t, err, "1 source(s) failed")
	assert.Contains(t, out, "https://down.example.org")
	assert.Contains(t, out, "FAILED: fetch failed")
}

func TestSyncCmd_InProgress(t *testing.T) {
	withServices(t, Services{Sync: &mockSyncOrchestrator{err: domain.ErrSyncInProgress}})

	_, err := execute(t, "sync")

	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
}

func TestStatusCmd(t *testing.T) {
	sched := &mockScheduler{history: []domain.TaskResult{
		{StartedAt: testTime, EndedAt: testTime.Add(time.Second), Success: true, Added: 3},
		{StartedAt: testTime.Add(-time.Hour), EndedAt: testTime.Add(-time.Hour), Error: "a: store insert: disk full"},
	}}
	withServices(t, Services{Scheduler: sched})

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "+3 ~0 -0")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "disk full")
}

func TestStatusCmd_Empty(t *testing.T) {
	withServices(t, Services{Scheduler: &mockScheduler{}})

	out, err := execute(t, "status")

	require.NoError(t, err)
	assert.Contains(t, out, "No sync runs recorded.")
}
