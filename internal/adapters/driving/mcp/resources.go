package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for sitesync resources.
	uriScheme = "sitesync://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "State of the current or last sync run",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "A synced document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// statusOutput is the JSON form of the sync status.
type statusOutput struct {
	Running bool           `json:"running"`
	LastRun *runOutput     `json:"last_run,omitempty"`
	Sources []sourceOutput `json:"sources,omitempty"`
}

type runOutput struct {
	RunID     string `json:"run_id"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
}

type sourceOutput struct {
	Source    string `json:"source"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Deleted   int    `json:"deleted"`
	Unchanged int    `json:"unchanged"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// handleStatusResource returns the sync status.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var out statusOutput
	if s.ports.Sync != nil {
		status, err := s.ports.Sync.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting sync status: %w", err)
		}
		out.Running = status.Running
		if r := status.LastReport; r != nil {
			out.LastRun = &runOutput{
				RunID:     r.RunID,
				StartedAt: r.StartedAt.Format(time.RFC3339),
				EndedAt:   r.EndedAt.Format(time.RFC3339),
			}
			for _, src := range r.Sources {
				out.Sources = append(out.Sources, sourceOutput{
					Source:    src.Label(),
					Added:     src.Added,
					Updated:   src.Updated,
					Deleted:   src.Deleted,
					Unchanged: src.Unchanged,
					Skipped:   src.Skipped,
					Error:     src.Err,
				})
			}
		}
	}

	return jsonResource(req.Params.URI, out)
}

// handleDocumentResource returns a single document as JSON.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractDocumentID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Document.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, toDocumentOutput(doc))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like sitesync://documents/{documentId}.
func extractDocumentID(uri string) (int64, bool) {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
