// Package mcp provides an MCP (Model Context Protocol) server adapter for sitesync.
// It lets AI assistants query synced documents and check access decisions.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")
