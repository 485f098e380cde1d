package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/caulf/live-telemetry/internal/domain/model"
)

// HTTPClient wraps http.Client with a timeout and optional bearer token.
type HTTPClient struct {
	client *http.Client
	token  string
}

// newHTTPClient creates a new HTTP client.
func newHTTPClient(timeout time.Duration, token string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
		token:  token,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// PostBatch submits one telemetry batch as JSON.
func (c *HTTPClient) PostBatch(ctx context.Context, url string, batch model.Batch) (*http.Response, error) {
	body, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.Do(req)
}

// drainAndClose reads the remainder of a response body and closes it so
// the underlying connection can be reused.
func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
