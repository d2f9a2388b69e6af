// Package httputil provides shared HTTP client construction and document
// fetching for remote schema sources.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultSchemaTimeout bounds a single fetch of a remote schema document.
const DefaultSchemaTimeout = 10 * time.Second

// MaxDocumentSize is the largest response body FetchDocument accepts.
const MaxDocumentSize = 4 << 20

// NewHTTPClient returns an *http.Client configured with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// FetchDocument GETs url and returns the response body. Non-2xx responses
// and bodies larger than MaxDocumentSize are errors.
func FetchDocument(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/schema+json, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	if len(body) > MaxDocumentSize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, MaxDocumentSize)
	}
	return body, nil
}
