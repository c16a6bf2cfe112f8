package site

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

const (
	// MaxBodySize caps the bytes read from one endpoint.
	MaxBodySize = 64 << 20

	// UserAgent identifies the client to site endpoints.
	UserAgent = "sitesync"
)

// Client fetches records from site endpoints.
type Client struct {
	http    *http.Client
	secret  string
	limiter *rate.Limiter
}

// NewClient creates a client with the configured timeout and rate.
func NewClient(cfg *Config) *Client {
	burst := cfg.Concurrency
	if burst < 1 {
		burst = 1
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		secret:  cfg.Secret,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

// Fetch retrieves every record an endpoint reports.
// Transport failures and non-200 responses return *domain.FetchError.
// Bodies that are not a JSON array return *domain.ParseError.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]Record, error) {
	target, err := c.requestURL(endpoint)
	if err != nil {
		return nil, &domain.FetchError{Endpoint: endpoint, Err: err}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.FetchError{Endpoint: endpoint, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, &domain.FetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Endpoint: endpoint, Err: redact(err, c.secret)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &domain.FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, &domain.FetchError{Endpoint: endpoint, Err: err}
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, &domain.ParseError{Origin: endpoint, Err: err}
	}
	return records, nil
}

// requestURL adds the secret to the endpoint, keeping any existing query.
func (c *Client) requestURL(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host")
	}

	q := u.Query()
	q.Set("secret", c.secret)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redact strips the secret from transport errors, which quote the URL.
func redact(err error, secret string) error {
	if secret == "" {
		return err
	}
	msg := err.Error()
	escaped := url.QueryEscape(secret)
	if !strings.Contains(msg, escaped) && !strings.Contains(msg, secret) {
		return err
	}
	msg = strings.ReplaceAll(msg, escaped, "REDACTED")
	msg = strings.ReplaceAll(msg, secret, "REDACTED")
	return fmt.Errorf("%s", msg)
}
