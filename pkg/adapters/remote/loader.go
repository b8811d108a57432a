// Package remote loads a scenario collection over HTTP.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/ringlens/pkg/adapters/file"
	"github.com/aretw0/ringlens/pkg/domain"
)

// DefaultTimeout bounds a single fetch when no client is supplied.
const DefaultTimeout = 10 * time.Second

// maxBody caps the scenario document size.
const maxBody = 8 << 20

// Loader implements ports.ScenarioLoader by fetching a JSON scenario
// document, in the same shapes the file loader accepts.
type Loader struct {
	URL    string
	Client *http.Client
}

// Option configures the Loader.
type Option func(*Loader)

// WithClient sets the HTTP client used for the fetch.
func WithClient(c *http.Client) Option {
	return func(l *Loader) {
		l.Client = c
	}
}

// New creates a remote loader for url.
func New(url string, opts ...Option) *Loader {
	l := &Loader{
		URL:    url,
		Client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadAll performs one GET and decodes the body.
func (l *Loader) LoadAll(ctx context.Context) ([]domain.Scenario, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid scenarios url: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch scenarios: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}
	scenarios, err := file.DecodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scenarios: %w", err)
	}
	return scenarios, nil
}
