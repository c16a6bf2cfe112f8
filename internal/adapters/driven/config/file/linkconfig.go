package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
)

// Ensure LinkConfigFile implements the interface.
var _ driven.LinkConfigProvider = (*LinkConfigFile)(nil)

// LinkConfigFile reads the quick-links configuration from a YAML file.
//
// Two layouts are accepted and may be mixed:
//
//	modified: 2025-01-20T08:00:00Z
//	icon_links:
//	  label: [Timetable, Library]
//	  url:   [https://..., https://...]
//	  id:    [tt, lib]
//	  campus_roles: ["Senior School:Staff", "*"]
//	  year:  ["", "7,8"]
//	links:
//	  - {id: lunch, label: Lunch menu, url: https://..., roles: "*"}
//
// When modified is absent the file modification time is used. When
// created is absent it defaults to modified.
type LinkConfigFile struct {
	path string
}

// NewLinkConfigFile creates a provider for the file at path.
func NewLinkConfigFile(path string) *LinkConfigFile {
	return &LinkConfigFile{path: path}
}

// Path returns the configuration file path.
func (f *LinkConfigFile) Path() string {
	return f.path
}

// linkFile is the on-disk shape.
type linkFile struct {
	Created   timestamp   `yaml:"created"`
	Modified  timestamp   `yaml:"modified"`
	IconLinks linkColumns `yaml:"icon_links"`
	TextLinks linkColumns `yaml:"text_links"`
	Links     []linkRow   `yaml:"links"`
}

// linkColumns holds one link per index across parallel sequences.
type linkColumns struct {
	Label []string `yaml:"label"`
	URL   []string `yaml:"url"`
	ID    []string `yaml:"id"`
	Roles []string `yaml:"campus_roles"`
	Year  []string `yaml:"year"`
}

type linkRow struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Roles string `yaml:"roles"`
	Year  string `yaml:"year"`
}

// Load reads and decodes the file. A missing file returns domain.ErrNotFound.
func (f *LinkConfigFile) Load(_ context.Context) (*domain.LinkConfig, error) {
	if f.path == "" {
		return nil, fmt.Errorf("quick-links config: %w", domain.ErrNotFound)
	}

	info, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("quick-links config %s: %w", f.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading quick-links config: %w", err)
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading quick-links config: %w", err)
	}

	var raw linkFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ParseError{Origin: f.path, Err: err}
	}

	cfg := &domain.LinkConfig{
		CreatedAt:  raw.Created.Time,
		ModifiedAt: raw.Modified.Time,
	}
	if cfg.ModifiedAt.IsZero() {
		cfg.ModifiedAt = info.ModTime().Truncate(time.Second)
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = cfg.ModifiedAt
	}

	cfg.Links = append(cfg.Links, raw.IconLinks.links()...)
	cfg.Links = append(cfg.Links, raw.TextLinks.links()...)
	for _, row := range raw.Links {
		cfg.Links = append(cfg.Links, domain.QuickLink(row))
	}

	return cfg, nil
}

// links zips the columns. The label column decides the count; short
// columns yield empty values.
func (c linkColumns) links() []domain.QuickLink {
	links := make([]domain.QuickLink, 0, len(c.Label))
	for i, label := range c.Label {
		links = append(links, domain.QuickLink{
			ID:    at(c.ID, i),
			Label: label,
			URL:   at(c.URL, i),
			Roles: at(c.Roles, i),
			Year:  at(c.Year, i),
		})
	}
	return links
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// timestamp accepts unix seconds or an RFC 3339 string.
type timestamp struct {
	time.Time
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *timestamp) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := domain.ParseTimestamp(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	t.Time = parsed
	return nil
}
