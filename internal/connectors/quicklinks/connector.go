package quicklinks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// ConnectorType is the type identifier of the quick-links connector.
const ConnectorType = "quicklinks"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector builds documents from the quick-links configuration.
type Connector struct {
	provider driven.LinkConfigProvider
	states   driven.SyncStateStore
}

// New creates a quick-links connector. states may be nil, in which case
// every run reconciles.
func New(provider driven.LinkConfigProvider, states driven.SyncStateStore) *Connector {
	return &Connector{provider: provider, states: states}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Snapshots returns the quick-links snapshot. When the configuration has
// not been modified since the last successful run, the snapshot is marked
// Unchanged. A missing configuration yields no snapshot.
func (c *Connector) Snapshots(ctx context.Context) ([]domain.Snapshot, error) {
	cfg, err := c.provider.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info("quicklinks: no configuration at %q, skipping", c.provider.Path())
			return nil, nil
		}
		logger.Error("quicklinks: %v", err)
		return []domain.Snapshot{{Source: domain.SourceQuickLinks, Origin: c.provider.Path(), Err: err}}, nil
	}

	snap := domain.Snapshot{
		Source: domain.SourceQuickLinks,
		Origin: c.provider.Path(),
		Cursor: Cursor(cfg),
	}

	if c.unchanged(ctx, snap.Cursor) {
		logger.Debug("quicklinks: configuration unchanged since last sync")
		snap.Unchanged = true
		return []domain.Snapshot{snap}, nil
	}

	snap.Documents = make([]domain.Document, 0, len(cfg.Links))
	for _, link := range cfg.Links {
		snap.Documents = append(snap.Documents, Document(cfg, link))
	}

	return []domain.Snapshot{snap}, nil
}

func (c *Connector) unchanged(ctx context.Context, cursor string) bool {
	if c.states == nil {
		return false
	}
	state, err := c.states.Get(ctx, domain.SourceQuickLinks)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("quicklinks: reading sync state: %v", err)
		}
		return false
	}
	return state.Cursor == cursor
}

// Cursor identifies a configuration revision by its modification time.
func Cursor(cfg *domain.LinkConfig) string {
	return strconv.FormatInt(cfg.ModifiedAt.Unix(), 10)
}

// Document converts one link. The configuration timestamps apply to every link.
func Document(cfg *domain.LinkConfig, link domain.QuickLink) domain.Document {
	return domain.Document{
		Source:     domain.SourceQuickLinks,
		ExternalID: strings.TrimSpace(link.ID),
		Title:      link.Label,
		URL:        link.URL,
		Audiences:  FormatAudience(fmt.Sprintf("%s %s", link.Roles, link.Year)),
		CreatedAt:  cfg.CreatedAt,
		ModifiedAt: cfg.ModifiedAt,
	}
}
