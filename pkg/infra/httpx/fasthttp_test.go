package httpx

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastHTTPClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		assert.Equal(t, "ContentGuard/test", r.Header.Get("User-Agent"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"ping":true}`, string(body))

		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(http.StatusCreated)
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"pong":true}`))
		_ = gz.Close()
	}))
	defer srv.Close()

	client := NewFastHTTPClient(WithUserAgent("ContentGuard/test"), WithTimeout(5*time.Second))
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL, strings.NewReader(`{"ping":true}`))
	require.NoError(t, err)
	req.Header.Set("api-key", "secret")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"pong":true}`, string(body))
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
}
