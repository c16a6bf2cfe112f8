package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
	"github.com/custodia-labs/sitesync/internal/core/services"
)

var testTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// mockSyncOrchestrator is a mock implementation of driving.SyncOrchestrator.
type mockSyncOrchestrator struct {
	status *driving.SyncStatus
	err    error
}

func (m *mockSyncOrchestrator) SyncAll(_ context.Context) (*domain.SyncReport, error) {
	return nil, m.err
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, _ string) (*domain.SyncReport, error) {
	return nil, m.err
}

func (m *mockSyncOrchestrator) Connectors() []string { return nil }

func (m *mockSyncOrchestrator) Status(_ context.Context) (*driving.SyncStatus, error) {
	return m.status, m.err
}

// newDocumentService returns a document service over a store seeded with docs.
func newDocumentService(t *testing.T, docs ...domain.Document) (*services.DocumentService, []int64) {
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
