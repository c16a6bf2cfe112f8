package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// ListModifiedSinceInput is the input schema for the list_modified_since tool.
type ListModifiedSinceInput struct {
	Since string `json:"since" jsonschema:"unix seconds or RFC 3339 time; documents modified at or after it are returned"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 100)"`

	LastIndexed string `json:"last_indexed,omitempty" jsonschema:"unix seconds or RFC 3339 time of the last index run; when set each document reports is_new"`
}

// ListModifiedSinceOutput is the output schema for the list_modified_since tool.
type ListModifiedSinceOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
	Total     int              `json:"total"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	ID          int64  `json:"id" jsonschema:"the document id"`
	LastIndexed string `json:"last_indexed,omitempty" jsonschema:"unix seconds or RFC 3339 time of the last index run; when set the document reports is_new"`
}

// CheckAccessInput is the input schema for the check_access tool.
type CheckAccessInput struct {
	ID    int64    `json:"id" jsonschema:"the document id"`
	Roles []string `json:"roles,omitempty" jsonschema:"campus roles of the requester"`
	Years []string `json:"years,omitempty" jsonschema:"year levels of the requester"`
	Admin bool     `json:"admin,omitempty" jsonschema:"whether the requester is a site administrator"`
}

// CheckAccessOutput is the output schema for the check_access tool.
type CheckAccessOutput struct {
	ID      int64  `json:"id"`
	Access  string `json:"access"`
	Granted bool   `json:"granted"`
}

// DocumentOutput represents a single document.
type DocumentOutput struct {
	ID         int64    `json:"id"`
	Source     string   `json:"source"`
	ExternalID string   `json:"external_id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Audiences  []string `json:"audiences"`
	Keywords   string   `json:"keywords,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	CreatedAt  string   `json:"created_at"`
	ModifiedAt string   `json:"modified_at"`
	IsNew      *bool    `json:"is_new,omitempty"`
}

const defaultListLimit = 100

func toDocumentOutput(doc *domain.Document) DocumentOutput {
	audiences := []string(doc.Audiences)
	if audiences == nil {
		audiences = []string{}
	}
	return DocumentOutput{
		ID:         doc.ID,
		Source:     doc.Source,
		ExternalID: doc.ExternalID,
		Title:      doc.Title,
		URL:        doc.URL,
		Audiences:  audiences,
		Keywords:   doc.Keywords,
		Excerpt:    doc.Excerpt,
		CreatedAt:  formatTime(doc.CreatedAt),
		ModifiedAt: formatTime(doc.ModifiedAt),
	}
}

// parseLastIndexed parses an optional last index time. ok is false when s
// is empty.
func parseLastIndexed(s string) (last time.Time, ok bool, err error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	last, err = domain.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last_indexed: %w", err)
	}
	return last, true, nil
}

// markNew sets IsNew on out when a last index time was given.
func markNew(out *DocumentOutput, doc *domain.Document, last time.Time, ok bool) {
	if ok {
		isNew := doc.IsNewSince(last)
		out.IsNew = &isNew
	}
}

// formatTime renders t as RFC 3339 UTC, or empty for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_modified_since",
		Description: "List synced documents modified at or after a time, oldest first",
	}, s.handleListModifiedSince)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get a synced document by id",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_access",
		Description: "Decide whether a requester may see a document",
	}, s.handleCheckAccess)
}

func (s *Server) handleListModifiedSince(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListModifiedSinceInput,
) (*mcp.CallToolResult, ListModifiedSinceOutput, error) {
	since, err := domain.ParseTimestamp(input.Since)
	if err != nil {
		return nil, ListModifiedSinceOutput{}, err
	}
	last, withLast, err := parseLastIndexed(input.LastIndexed)
	if err != nil {
		return nil, ListModifiedSinceOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	docs, err := s.ports.Document.ListModifiedSince(ctx, since)
	if err != nil {
		return nil, ListModifiedSinceOutput{}, err
	}

	output := ListModifiedSinceOutput{Total: len(docs)}
	if len(docs) > limit {
		docs = docs[:limit]
	}
	output.Documents = make([]DocumentOutput, len(docs))
	for i := range docs {
		output.Documents[i] = toDocumentOutput(&docs[i])
		markNew(&output.Documents[i], &docs[i], last, withLast)
	}
	output.Count = len(docs)

	return nil, output, nil
}

func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	last, withLast, err := parseLastIndexed(input.LastIndexed)
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	doc, err := s.ports.Document.Get(ctx, input.ID)
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("document %d: %w", input.ID, err)
	}
	out := toDocumentOutput(doc)
	markNew(&out, doc, last, withLast)
	return nil, out, nil
}

func (s *Server) handleCheckAccess(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckAccessInput,
) (*mcp.CallToolResult, CheckAccessOutput, error) {
	requester := domain.Requester{
		Roles:     input.Roles,
		Years:     input.Years,
		SiteAdmin: input.Admin,
	}
	access := s.ports.Document.CheckAccess(ctx, input.ID, requester)
	return nil, CheckAccessOutput{
		ID:      input.ID,
		Access:  access.String(),
		Granted: access == domain.AccessGranted,
	}, nil
}
