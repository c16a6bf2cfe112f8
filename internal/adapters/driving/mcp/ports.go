package mcp

import (
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document queries the documents table and decides access.
	Document driving.DocumentService

	// Sync reports the sync status. Optional.
	Sync driving.SyncOrchestrator
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
