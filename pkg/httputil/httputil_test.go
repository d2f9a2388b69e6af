package httputil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpatil524/autolabel/pkg/httputil"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
	}{
		{"schema timeout", httputil.DefaultSchemaTimeout},
		{"custom timeout", 5 * time.Second},
		{"zero timeout", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := httputil.NewHTTPClient(tt.timeout)
			require.NotNil(t, client, "returned client must not be nil")
			assert.Equal(t, tt.timeout, client.Timeout, "client timeout must match requested value")
		})
	}
}

func TestFetchDocument(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schema.json":
			assert.Contains(t, r.Header.Get("Accept"), "application/json")
			_, _ = w.Write([]byte(`{"type":"object"}`))
		case "/large.json":
			_, _ = w.Write([]byte(strings.Repeat("x", httputil.MaxDocumentSize+1)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client := httputil.NewHTTPClient(httputil.DefaultSchemaTimeout)

	body, err := httputil.FetchDocument(context.Background(), client, server.URL+"/schema.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object"}`, string(body))

	_, err = httputil.FetchDocument(context.Background(), client, server.URL+"/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")

	_, err = httputil.FetchDocument(context.Background(), client, server.URL+"/large.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetchDocument_Canceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := httputil.FetchDocument(ctx, httputil.NewHTTPClient(time.Second), server.URL)
	assert.Error(t, err)
}
