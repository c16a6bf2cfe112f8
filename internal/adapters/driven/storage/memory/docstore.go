package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[int64]domain.Document
	byKey     map[domain.DocumentKey]int64
	nextID    int64

	// FailOn makes the named operation ("insert", "update", "delete")
	// return a store error. Tests only.
	FailOn map[string]error
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[int64]domain.Document),
		byKey:     make(map[domain.DocumentKey]int64),
		nextID:    1,
	}
}

func (s *DocumentStore) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		return err
	}
	return nil
}

// Insert stores a new document and returns its assigned ID.
func (s *DocumentStore) Insert(_ context.Context, doc *domain.Document) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("insert"); err != nil {
		return 0, err
	}

	key := doc.Key()
	if _, ok := s.byKey[key]; ok {
		return 0, fmt.Errorf("inserting document %s/%s: %w", key.Source, key.ExternalID, domain.ErrAlreadyExists)
	}

	stored := *doc
	stored.ID = s.nextID
	s.nextID++
	s.documents[stored.ID] = stored
	s.byKey[key] = stored.ID
	return stored.ID, nil
}

// Update rewrites the stored document with doc.ID. The source key is immutable.
func (s *DocumentStore) Update(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("update"); err != nil {
		return err
	}

	existing, ok := s.documents[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}

	stored := *doc
	stored.Source = existing.Source
	stored.ExternalID = existing.ExternalID
	s.documents[doc.ID] = stored
	return nil
}

// Delete removes documents by ID.
func (s *DocumentStore) Delete(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("delete"); err != nil {
		return err
	}

	for _, id := range ids {
		s.remove(id)
	}
	return nil
}

// DeleteByExternalIDs removes documents of one source by external id.
func (s *DocumentStore) DeleteByExternalIDs(_ context.Context, source string, externalIDs []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("delete"); err != nil {
		return 0, err
	}

	n := 0
	for _, extid := range externalIDs {
		if id, ok := s.byKey[domain.DocumentKey{Source: source, ExternalID: extid}]; ok {
			s.remove(id)
			n++
		}
	}
	return n, nil
}

func (s *DocumentStore) remove(id int64) {
	doc, ok := s.documents[id]
	if !ok {
		return
	}
	delete(s.byKey, doc.Key())
	delete(s.documents, id)
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByExternalID retrieves a document by its source key.
func (s *DocumentStore) GetByExternalID(_ context.Context, source, externalID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[domain.DocumentKey{Source: source, ExternalID: externalID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.documents[id]
	return &doc, nil
}

// ListBySource returns every document of a source ordered by ID.
func (s *DocumentStore) ListBySource(_ context.Context, source string) ([]domain.Document, error) {
	return s.filter(func(d *domain.Document) bool { return d.Source == source }, false), nil
}

// ListModifiedSince returns documents modified at or after since, oldest first.
func (s *DocumentStore) ListModifiedSince(_ context.Context, since time.Time) ([]domain.Document, error) {
	return s.filter(func(d *domain.Document) bool { return !d.ModifiedAt.Before(since) }, true), nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func (s *DocumentStore) filter(keep func(*domain.Document) bool, byModified bool) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range s.documents {
		if keep(&doc) {
			docs = append(docs, doc)
		}
	}

	sort.Slice(docs, func(i, j int) bool {
		if byModified && !docs[i].ModifiedAt.Equal(docs[j].ModifiedAt) {
			return docs[i].ModifiedAt.Before(docs[j].ModifiedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}
