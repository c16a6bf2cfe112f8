package site

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// ConnectorType is the type identifier of the site connector.
const ConnectorType = "sites"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector fetches documents from external site endpoints.
type Connector struct {
	config *Config
	client *Client
}

// New creates a new site connector.
func New(cfg *Config) *Connector {
	return &Connector{
		config: cfg,
		client: NewClient(cfg),
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// fetchResult is the outcome of one endpoint.
type fetchResult struct {
	endpoint string
	records  []Record
	err      error
}

// Snapshots fetches every endpoint and groups the records by source tag.
// A failed endpoint yields a snapshot carrying Err and no documents. An
// endpoint returning an empty array yields an empty snapshot.
func (c *Connector) Snapshots(ctx context.Context) ([]domain.Snapshot, error) {
	if len(c.config.Endpoints) == 0 {
		logger.Debug("sites: no endpoints configured")
		return nil, nil
	}

	results := make([]fetchResult, len(c.config.Endpoints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Concurrency)
	for i, endpoint := range c.config.Endpoints {
		g.Go(func() error {
			logger.Info("Processing endpoint: %s", endpoint)
			records, err := c.client.Fetch(gctx, endpoint)
			results[i] = fetchResult{endpoint: endpoint, records: records, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return group(results), nil
}

// group builds one snapshot per source tag in order of first appearance,
// plus one snapshot per failed or empty endpoint. When any endpoint failed,
// every tagged snapshot is marked partial: the failed endpoint may have
// served documents under the same tags.
func group(results []fetchResult) []domain.Snapshot {
	var snapshots []domain.Snapshot
	index := make(map[string]int)
	failed := false

	for _, res := range results {
		if res.err != nil {
			failed = true
			snapshots = append(snapshots, domain.Snapshot{Origin: res.endpoint, Err: res.err})
			continue
		}

		if len(res.records) == 0 {
			logger.Warn("sites: %s returned no documents", res.endpoint)
			snapshots = append(snapshots, domain.Snapshot{Origin: res.endpoint})
			continue
		}

		for i := range res.records {
			rec := &res.records[i]
			tag := strings.TrimSpace(rec.Source)
			doc, err := rec.Document()
			switch {
			case err != nil:
			case tag == "":
				err = &domain.ValidationError{ExternalID: doc.ExternalID, Field: "source", Reason: "is required"}
			case domain.IsReservedSource(tag):
				err = &domain.ValidationError{
					Source: tag, ExternalID: doc.ExternalID, Field: "source", Reason: "is reserved",
				}
			}

			// Records without a usable tag cannot be attributed to a snapshot
			if err != nil && (tag == "" || domain.IsReservedSource(tag)) {
				logger.Warn("sites: %s: dropping record: %v", res.endpoint, err)
				continue
			}

			pos, ok := index[tag]
			if !ok {
				pos = len(snapshots)
				index[tag] = pos
				snapshots = append(snapshots, domain.Snapshot{Source: tag, Origin: res.endpoint})
			}

			if err != nil {
				logger.Warn("sites: %s: dropping record: %v", res.endpoint, err)
				snapshots[pos].Dropped++
				continue
			}
			snapshots[pos].Documents = append(snapshots[pos].Documents, *doc)
		}
	}

	if failed {
		for i := range snapshots {
			if snapshots[i].Source != "" {
				snapshots[i].Partial = true
			}
		}
	}
	return snapshots
}
