package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/normalisers/html"
)

// Record is one document as reported by a site endpoint.
type Record struct {
	Source       string    `json:"source"`
	ExternalID   flexValue `json:"extid"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Audiences    string    `json:"audiences"`
	Keywords     string    `json:"keywords"`
	Content      string    `json:"content"`
	TimeCreated  flexValue `json:"timecreated"`
	TimeModified flexValue `json:"timemodified"`
}

// Document converts the record. Content is reduced to an excerpt and not kept.
func (r *Record) Document() (*domain.Document, error) {
	created, err := r.TimeCreated.unix()
	if err != nil {
		return nil, &domain.ValidationError{
			Source: r.Source, ExternalID: string(r.ExternalID), Field: "timecreated", Reason: err.Error(),
		}
	}
	modified, err := r.TimeModified.unix()
	if err != nil {
		return nil, &domain.ValidationError{
			Source: r.Source, ExternalID: string(r.ExternalID), Field: "timemodified", Reason: err.Error(),
		}
	}

	return &domain.Document{
		Source:     strings.TrimSpace(r.Source),
		ExternalID: strings.TrimSpace(string(r.ExternalID)),
		Title:      r.Title,
		URL:        r.URL,
		Audiences:  domain.ParseAudience(r.Audiences),
		Keywords:   r.Keywords,
		Excerpt:    html.Excerpt(r.Content),
		CreatedAt:  created,
		ModifiedAt: modified,
	}, nil
}

// decodeRecords parses an endpoint body. The body must be a JSON array.
func decodeRecords(body []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array")
	}

	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// flexValue accepts a JSON string or number and keeps its text.
type flexValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *flexValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = flexValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*v = flexValue(n.String())
	return nil
}

// unix parses the value as unix seconds. Empty is the zero time.
func (v flexValue) unix() (time.Time, error) {
	s := strings.TrimSpace(string(v))
	if s == "" || s == "0" {
		return time.Time{}, nil
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return time.Time{}, fmt.Errorf("not a unix timestamp: %q", s)
		}
		sec = int64(f)
	}
	return time.Unix(sec, 0), nil
}
