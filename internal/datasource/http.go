package datasource

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mcoot/kmnx-league/internal/model"
)

// DefaultHTTPTimeout bounds the single GET of the data document
const DefaultHTTPTimeout = 10 * time.Second

// HTTPSource fetches a data.json document with one unauthenticated GET
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a source for url with the default timeout
func NewHTTPSource(url string) *HTTPSource {
	return NewHTTPSourceWithClient(url, &http.Client{
		Timeout: DefaultHTTPTimeout,
	})
}

// NewHTTPSourceWithClient creates a source using an existing client
func NewHTTPSourceWithClient(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: client,
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Load(ctx context.Context) (*model.League, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", s.url, resp.Status)
	}

	return Decode(resp.Body)
}
