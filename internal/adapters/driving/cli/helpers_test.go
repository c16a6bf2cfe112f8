package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
	"github.com/custodia-labs/sitesync/internal/core/services"
)

var testTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// mockSyncOrchestrator implements driving.SyncOrchestrator for testing.
type mockSyncOrchestrator struct {
	report   *domain.SyncReport
	err      error
	lastType string
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, connectorType string) (*domain.SyncReport, error) {
	m.lastType = connectorType
	return m.report, m.err
}

func (m *mockSyncOrchestrator) SyncAll(_ context.Context) (*domain.SyncReport, error) {
	return m.report, m.err
}

func (m *mockSyncOrchestrator) Connectors() []string { return []string{"sites", "quicklinks", "users"} }

func (m *mockSyncOrchestrator) Status(_ context.Context) (*driving.SyncStatus, error) {
	return &driving.SyncStatus{LastReport: m.report}, nil
}

// mockScheduler implements driving.Scheduler for testing.
type mockScheduler struct {
	history []domain.TaskResult
	err     error
}

func (m *mockScheduler) Start(_ context.Context) error { return nil }

func (m *mockScheduler) Stop() error { return nil }

func (m *mockScheduler) History(_ context.Context, limit int) ([]domain.TaskResult, error) {
	if len(m.history) > limit {
		return m.history[:limit], m.err
	}
	return m.history, m.err
}

// withServices swaps the package services for the duration of a test.
func withServices(t *testing.T, s Services) {
	t.Helper()
	old := Services{
		Sync:      syncOrchestrator,
		Documents: documentService,
		Settings:  settingsService,
		Scheduler: scheduler,
		Users:     userService,
	}
	syncOrchestrator = s.Sync
	documentService = s.Documents
	settingsService = s.Settings
	scheduler = s.Scheduler
	userService = s.Users
	t.Cleanup(func() {
		syncOrchestrator = old.Sync
		documentService = old.Documents
		settingsService = old.Settings
		scheduler = old.Scheduler
		userService = old.Users
	})
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores flag defaults; cobra keeps parsed values between runs.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// seededDocuments returns a document service over a memory store with docs.
func seededDocuments(t *testing.T, docs ...domain.Document) (*services.DocumentService, []int64) {
	t.Helper()
	store := memory.NewDocumentStore()
	ids := make([]int64, 0, len(docs))
	for i := range docs {
		id, err := store.Insert(context.Background(), &docs[i])
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return services.NewDocumentService(store, nil), ids
}

func testDocument(source, extID string, modified time.Time, audience ...string) domain.Document {
	return domain.Document{
		Source:     source,
		ExternalID: extID,
		Title:      "Document " + extID,
		URL:        "https://example.org/" + extID,
		Audiences:  domain.NewAudience(audience...),
		CreatedAt:  testTime,
		ModifiedAt: modified,
	}
}
