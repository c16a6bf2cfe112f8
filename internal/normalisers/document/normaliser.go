// Package document applies the document model rules shared by every source:
// trimmed fields, lowercase deduplicated audiences, no author, a bounded
// plain-text excerpt, and a non-empty source key.
package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/normalisers/html"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// record carries the constraints checked on every document.
type record struct {
	Source     string `validate:"required,max=255"`
	ExternalID string `validate:"required,max=255"`
	Title      string `validate:"max=1333"`
}

// Normaliser normalises and validates documents.
type Normaliser struct {
	validate *validator.Validate
}

// New creates a document normaliser.
func New() *Normaliser {
	return &Normaliser{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Normalise cleans doc in place and validates it.
func (n *Normaliser) Normalise(_ context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	doc.Source = strings.TrimSpace(doc.Source)
	doc.ExternalID = strings.TrimSpace(doc.ExternalID)
	doc.Author = ""
	doc.Title = html.ToText(doc.Title)
	doc.URL = strings.TrimSpace(doc.URL)
	doc.Keywords = strings.TrimSpace(doc.Keywords)
	doc.Audiences = domain.NewAudience(doc.Audiences...)
	doc.Excerpt = html.Shorten(doc.Excerpt, html.MaxExcerptLength)
	doc.CreatedAt = doc.CreatedAt.Truncate(time.Second)
	doc.ModifiedAt = doc.ModifiedAt.Truncate(time.Second)

	err := n.validate.Struct(record{
		Source:     doc.Source,
		ExternalID: doc.ExternalID,
		Title:      doc.Title,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &domain.ValidationError{
			Source:     doc.Source,
			ExternalID: doc.ExternalID,
			Field:      fe.Field(),
			Reason:     reason(fe),
		}
	}
	return err
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "exceeds " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag()
	}
}
