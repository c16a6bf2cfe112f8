package site

import (
	"strings"
	"time"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// Config holds the settings of the site connector.
type Config struct {
	// Endpoints are the site search URLs.
	Endpoints []string

	// Secret is sent as the "secret" query parameter.
	Secret string

	// Timeout bounds each request.
	Timeout time.Duration

	// Concurrency bounds parallel fetches.
	Concurrency int

	// RequestsPerSecond throttles request starts.
	RequestsPerSecond float64
}

// ConfigFromSettings builds a Config, applying defaults to unset values.
func ConfigFromSettings(s domain.SiteSettings) *Config {
	cfg := &Config{
		Secret:            s.Secret,
		Timeout:           s.Timeout,
		Concurrency:       s.Concurrency,
		RequestsPerSecond: s.RequestsPerSecond,
	}
	for _, e := range s.Endpoints {
		if e = strings.TrimSpace(e); e != "" {
			cfg.Endpoints = append(cfg.Endpoints, e)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultFetchTimeout
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = domain.DefaultFetchConcurrency
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = domain.DefaultRequestsPerSecond
	}
	return cfg
}
