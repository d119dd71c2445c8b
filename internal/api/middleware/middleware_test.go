package middleware_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/travelplanner/internal/api/middleware"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
)

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var seen string
	handler := middleware.LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "req-123", seen)
	assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("listed origin", func(t *testing.T) {
		handler := middleware.CORSMiddleware([]string{"https://app.example.com"})(next)
		req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("unlisted origin", func(t *testing.T) {
		handler := middleware.CORSMiddleware([]string{"https://app.example.com"})(next)
		req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		handler := middleware.CORSMiddleware(nil)(next)
		req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}

func TestCacheControl(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := middleware.CacheControl(next)

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/api/regions", "public, max-age=300, must-revalidate"},
		{http.MethodGet, "/api/hotels/3", "public, max-age=60, must-revalidate"},
		{http.MethodGet, "/api/v1/my-trips", "private, no-cache, must-revalidate"},
		{http.MethodPost, "/api/regions", "no-store"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Header().Get("Cache-Control"), tt.path)
	}
}

func TestETag_NotModified(t *testing.T) {
	handler := middleware.ETag(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/regions", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	assert.NotEmpty(t, etag)
	assert.Equal(t, `[{"id":1}]`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
	req.Header.Set("If-None-Match", `"other", W/`+etag)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestETag_SkipsErrorsAndWrites(t *testing.T) {
	notFound := middleware.ETag(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	w := httptest.NewRecorder()
	notFound.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hotels/9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("ETag"))
	assert.Equal(t, "missing", w.Body.String())

	created := middleware.ETag(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	w = httptest.NewRecorder()
	created.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/hotels", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("ETag"))
}

func TestCompression(t *testing.T) {
	large := strings.Repeat("đà lạt ", 400)
	tests := []struct {
		name     string
		body     string
		accept   string
		wantGzip bool
	}{
		{name: "large body", body: large, accept: "gzip, deflate", wantGzip: true},
		{name: "small body", body: `{"status":"ok"}`, accept: "gzip"},
		{name: "client without gzip", body: large},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/places", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if !tt.wantGzip {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, w.Body.String())
				return
			}
			assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
			gz, err := gzip.NewReader(w.Body)
			require.NoError(t, err)
			decoded, err := io.ReadAll(gz)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(decoded))
		})
	}
}
