package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

func TestNormalise_CleansFields(t *testing.T) {
	n := New()
	doc := &domain.Document{
		Source:     " news ",
		ExternalID: " 17 ",
		Author:     "Someone",
		Title:      "<b>Term</b> dates",
		URL:        " https://news.example/17 ",
		Audiences:  domain.Audience{"Staff", "staff", "", "Parents"},
		Excerpt:    strings.Repeat("x ", 400),
		ModifiedAt: time.Unix(100, 0),
	}

	require.NoError(t, n.Normalise(context.Background(), doc))

	assert.Equal(t, "news", doc.Source)
	assert.Equal(t, "17", doc.ExternalID)
	assert.Empty(t, doc.Author)
	assert.Equal(t, "Term dates", doc.Title)
	assert.Equal(t, "https://news.example/17", doc.URL)
	assert.Equal(t, domain.Audience{"staff", "parents"}, doc.Audiences)
	assert.LessOrEqual(t, len([]rune(doc.Excerpt)), 300)
}

func TestNormalise_MissingExternalID(t *testing.T) {
	n := New()
	doc := &domain.Document{Source: "news", ExternalID: "  "}

	err := n.Normalise(context.Background(), doc)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "ExternalID", ve.Field)
	assert.Equal(t, "is required", ve.Reason)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_MissingSource(t *testing.T) {
	n := New()

	err := n.Normalise(context.Background(), &domain.Document{ExternalID: "1"})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Source", ve.Field)
}

func TestNormalise_Nil(t *testing.T) {
	assert.ErrorIs(t, New().Normalise(context.Background(), nil), domain.ErrInvalidInput)
}
