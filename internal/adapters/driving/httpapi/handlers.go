package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// Document is the JSON form of a stored document.
type Document struct {
	ID         int64    `json:"id"`
	Source     string   `json:"source"`
	ExternalID string   `json:"external_id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Audiences  []string `json:"audiences"`
	Keywords   string   `json:"keywords,omitempty"`
	Excerpt    string   `json:"excerpt,omitempty"`
	CreatedAt  int64    `json:"created_at"`
	ModifiedAt int64    `json:"modified_at"`

	// IsNew is set when the request carried last_indexed.
	IsNew *bool `json:"is_new,omitempty"`
}

// AccessDecision is the JSON form of an access check.
type AccessDecision struct {
	ID      int64  `json:"id"`
	Access  string `json:"access"`
	Granted bool   `json:"granted"`
}

// SourceResult is the JSON form of one source of a sync report.
type SourceResult struct {
	Source    string `json:"source"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Deleted   int    `json:"deleted"`
	Unchanged int    `json:"unchanged"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// Report is the JSON form of a sync report.
type Report struct {
	RunID     string         `json:"run_id"`
	StartedAt int64          `json:"started_at"`
	EndedAt   int64          `json:"ended_at"`
	Sources   []SourceResult `json:"sources"`
}

// Status is the JSON form of the sync status.
type Status struct {
	Running    bool    `json:"running"`
	LastReport *Report `json:"last_report,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// unix renders t as unix seconds, zero for the zero time.
func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func toDocument(doc *domain.Document) Document {
	audiences := []string(doc.Audiences)
	if audiences == nil {
		audiences = []string{}
	}
	return Document{
		ID:         doc.ID,
		Source:     doc.Source,
		ExternalID: doc.ExternalID,
		Title:      doc.Title,
		URL:        doc.URL,
		Audiences:  audiences,
		Keywords:   doc.Keywords,
		Excerpt:    doc.Excerpt,
		CreatedAt:  unix(doc.CreatedAt),
		ModifiedAt: unix(doc.ModifiedAt),
	}
}

func toReport(r *domain.SyncReport) *Report {
	if r == nil {
		return nil
	}
	out := &Report{
		RunID:     r.RunID,
		StartedAt: unix(r.StartedAt),
		EndedAt:   unix(r.EndedAt),
		Sources:   make([]SourceResult, 0, len(r.Sources)),
	}
	for _, s := range r.Sources {
		out.Sources = append(out.Sources, SourceResult{
			Source:    s.Label(),
			Added:     s.Added,
			Updated:   s.Updated,
			Deleted:   s.Deleted,
			Unchanged: s.Unchanged,
			Skipped:   s.Skipped,
			Error:     s.Err,
		})
	}
	return out
}

// lastIndexed parses the optional last_indexed parameter.
func lastIndexed(r *http.Request) (time.Time, bool, error) {
	v := r.URL.Query().Get("last_indexed")
	if v == "" {
		return time.Time{}, false, nil
	}
	t, err := domain.ParseTimestamp(v)
	return t, err == nil, err
}

// markNew sets IsNew on out when a last index time was given.
func markNew(out *Document, doc *domain.Document, last time.Time, ok bool) {
	if ok {
		isNew := doc.IsNewSince(last)
		out.IsNew = &isNew
	}
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	since, err := domain.ParseTimestamp(r.URL.Query().Get("since"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	last, withLast, err := lastIndexed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
	}

	docs, err := s.documents.ListModifiedSince(r.Context(), since)
	if err != nil {
		logger.Error("http: listing documents: %v", err)
		writeError(w, http.StatusInternalServerError, errors.New("listing documents failed"))
		return
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = toDocument(&docs[i])
		markNew(&out[i], &docs[i], last, withLast)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	last, withLast, err := lastIndexed(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := s.documents.Get(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		logger.Error("http: getting document %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, errors.New("getting document failed"))
	default:
		out := toDocument(doc)
		markNew(&out, doc, last, withLast)
		writeJSON(w, http.StatusOK, out)
	}
}

// handleCheckAccess always answers 200; a missing document is denied.
func (s *Server) handleCheckAccess(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	admin, _ := strconv.ParseBool(q.Get("admin"))
	requester := domain.Requester{
		Roles:     domain.ParseList(q.Get("roles")),
		Years:     domain.ParseList(q.Get("years")),
		SiteAdmin: admin,
	}

	access := s.documents.CheckAccess(r.Context(), id, requester)
	writeJSON(w, http.StatusOK, AccessDecision{
		ID:      id,
		Access:  access.String(),
		Granted: access == domain.AccessGranted,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.sync.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, Status{
		Running:    status.Running,
		LastReport: toReport(status.LastReport),
	})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	report, err := s.sync.SyncAll(r.Context())
	switch {
	case errors.Is(err, domain.ErrSyncInProgress):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, toReport(report))
	}
}

func documentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("document id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("http: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}
