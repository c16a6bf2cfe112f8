package domain

import (
	"strings"
	"time"
)

// Document is a single indexable record in the documents table.
// Every source maps its native records onto this shape.
type Document struct {
	// ID is assigned by the store on insert and never changes afterwards.
	// Zero means the document has not been stored yet.
	ID int64

	// Source tags the producing adapter ("ql", "usr" or a site tag).
	Source string

	// ExternalID identifies the document within its source.
	ExternalID string

	// Author is never populated for synced documents.
	Author string

	// Title is the display title.
	Title string

	// URL is where the search result links to.
	URL string

	// Audiences lists who may view the document.
	Audiences Audience

	// Keywords holds free-text tags. Not used for access control.
	Keywords string

	// Content is empty for most sources. For users it holds a hash
	// of the identity fields, used only for change detection.
	Content string

	// Excerpt is a short plain-text summary.
	Excerpt string

	// CreatedAt is the creation time reported by the origin system.
	CreatedAt time.Time

	// ModifiedAt is the modification time reported by the origin system.
	ModifiedAt time.Time
}

// Key returns the (source, external id) pair identifying the document.
func (d *Document) Key() DocumentKey {
	return DocumentKey{Source: d.Source, ExternalID: d.ExternalID}
}

// IsNewSince reports whether the document was created after the given
// index time, i.e. the search index has never seen it. The zero time means
// the index never ran, so any document with a creation time is new.
func (d *Document) IsNewSince(lastIndexed time.Time) bool {
	if d.CreatedAt.IsZero() {
		return false
	}
	var last int64
	if !lastIndexed.IsZero() {
		last = lastIndexed.Unix()
	}
	return last < d.CreatedAt.Unix()
}

// DocumentKey is the unique key of a stored document.
type DocumentKey struct {
	Source     string
	ExternalID string
}

// Changed reports whether incoming differs from stored under the change
// key of the document's source.
func Changed(stored, incoming *Document) bool {
	switch stored.Source {
	case SourceUsers:
		return stored.Content != incoming.Content
	case SourceQuickLinks:
		return !stored.ModifiedAt.Equal(incoming.ModifiedAt) || stored.URL != incoming.URL
	default:
		return !stored.ModifiedAt.Equal(incoming.ModifiedAt)
	}
}

// Audience is an ordered set of lowercase tokens.
type Audience []string

// ParseAudience splits a comma or whitespace separated list into a
// normalised Audience.
func ParseAudience(s string) Audience {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return NewAudience(fields...)
}

// NewAudience lower-cases, trims and deduplicates tokens, keeping the
// first occurrence order. Empty tokens are dropped.
func NewAudience(tokens ...string) Audience {
	seen := make(map[string]struct{}, len(tokens))
	out := make(Audience, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Contains reports whether token is in the audience.
func (a Audience) Contains(token string) bool {
	for _, t := range a {
		if t == token {
			return true
		}
	}
	return false
}

// String joins the tokens with commas, the stored representation.
func (a Audience) String() string {
	return strings.Join(a, ",")
}
