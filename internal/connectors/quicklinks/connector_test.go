package quicklinks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesync/internal/core/domain"
)

type stubProvider struct {
	cfg *domain.LinkConfig
	err error
}

func (p *stubProvider) Load(_ context.Context) (*domain.LinkConfig, error) {
	return p.cfg, p.err
}

func (p *stubProvider) Path() string { return "/etc/sitesync/links.yaml" }

func testLinkConfig() *domain.LinkConfig {
	return &domain.LinkConfig{
		CreatedAt:  time.Unix(1600000000, 0),
		ModifiedAt: time.Unix(1700000000, 0),
		Links: []domain.QuickLink{
			{ID: "tt", Label: "Timetable", URL: "https://example.org/tt", Roles: "Senior School:Staff"},
			{ID: "lib", Label: "Library", URL: "https://example.org/lib", Roles: "*"},
			{ID: "y7", Label: "Year 7 hub", URL: "https://example.org/y7", Year: "7,8"},
		},
	}
}

func TestFormatAudience(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Audience
	}{
		{"noise words dropped", "Senior School:Staff", domain.Audience{"staff"}},
		{"multiple roles", "Primary School:Parents,Senior School:Students", domain.Audience{"parents", "students"}},
		{"wildcard expanded and kept", "*", domain.Audience{"*", "staff", "students", "parents", "admin"}},
		{"dotted wildcard suffix", "Staff.*", domain.Audience{"staff"}},
		{"years", " 7,8", domain.Audience{"7", "8"}},
		{"roles and years", "Senior School:Students 10", domain.Audience{"students", "10"}},
		{"duplicates removed", "staff,Staff:staff", domain.Audience{"staff"}},
		{"empty", "  ", domain.Audience{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAudience(tt.raw))
		})
	}
}

func TestConnector_Snapshot(t *testing.T) {
	c := New(&stubProvider{cfg: testLinkConfig()}, memory.NewSyncStateStore())
	assert.Equal(t, "quicklinks", c.Type())

	snaps, err := c.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	snap := snaps[0]
	assert.Equal(t, domain.SourceQuickLinks, snap.Source)
	assert.False(t, snap.Unchanged)
	assert.Equal(t, "1700000000", snap.Cursor)
	require.Len(t, snap.Documents, 3)

	doc := snap.Documents[0]
	assert.Equal(t, "tt", doc.ExternalID)
	assert.Equal(t, "Timetable", doc.Title)
	assert.Equal(t, domain.Audience{"staff"}, doc.Audiences)
	assert.Equal(t, int64(1600000000), doc.CreatedAt.Unix())
	assert.Equal(t, int64(1700000000), doc.ModifiedAt.Unix())
	assert.Empty(t, doc.Content)

	assert.Equal(t, domain.Audience{"7", "8"}, snap.Documents[2].Audiences)
}

func TestConnector_UnchangedShortCircuit(t *testing.T) {
	states := memory.NewSyncStateStore()
	require.NoError(t, states.Save(context.Background(), domain.SyncState{
		SourceID: domain.SourceQuickLinks, Cursor: "1700000000",
	}))

	snaps, err := New(&stubProvider{cfg: testLinkConfig()}, states).Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.True(t, snaps[0].Unchanged)
	assert.Empty(t, snaps[0].Documents)
}

func TestConnector_ModifiedConfigReconciles(t *testing.T) {
	states := memory.NewSyncStateStore()
	require.NoError(t, states.Save(context.Background(), domain.SyncState{
		SourceID: domain.SourceQuickLinks, Cursor: "1600000000",
	}))

	snaps, err := New(&stubProvider{cfg: testLinkConfig()}, states).Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.False(t, snaps[0].Unchanged)
	assert.Len(t, snaps[0].Documents, 3)
}

func TestConnector_MissingConfig(t *testing.T) {
	provider := &stubProvider{err: domain.ErrNotFound}

	snaps, err := New(provider, nil).Snapshots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestConnector_BrokenConfig(t *testing.T) {
	parseErr := &domain.ParseError{Origin: "links.yaml", Err: errors.New("bad indent")}

	snaps, err := New(&stubProvider{err: parseErr}, nil).Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.ErrorIs(t, snaps[0].Err, parseErr)
	assert.Empty(t, snaps[0].Documents)
}
