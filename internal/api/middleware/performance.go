package middleware

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Bodies smaller than this are sent uncompressed.
const minGzipSize = 1024

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		gz, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return gz
	},
}

// bufferedWriter holds the status and body until the wrapping middleware decides how to send them.
type bufferedWriter struct {
	http.ResponseWriter
	body bytes.Buffer
	code int
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.code == 0 {
		b.code = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

func (b *bufferedWriter) status() int {
	if b.code == 0 {
		return http.StatusOK
	}
	return b.code
}

func (b *bufferedWriter) flush() {
	b.ResponseWriter.WriteHeader(b.status())
	_, _ = b.ResponseWriter.Write(b.body.Bytes())
}

// Compression gzips response bodies for clients that accept it
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		buf := &bufferedWriter{ResponseWriter: w}
		next.ServeHTTP(buf, r)

		w.Header().Add("Vary", "Accept-Encoding")
		if buf.body.Len() < minGzipSize || buf.status() == http.StatusNotModified || w.Header().Get("Content-Encoding") != "" {
			buf.flush()
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.WriteHeader(buf.status())

		gz := gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(gz)
		gz.Reset(w)
		_, _ = gz.Write(buf.body.Bytes())
		_ = gz.Close()
	})
}

// ETag tags successful GET and HEAD responses with a body hash and answers
// a matching If-None-Match with 304.
func ETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		buf := &bufferedWriter{ResponseWriter: w}
		next.ServeHTTP(buf, r)

		if buf.status() != http.StatusOK {
			buf.flush()
			return
		}

		sum := sha256.Sum256(buf.body.Bytes())
		etag := `"` + hex.EncodeToString(sum[:16]) + `"`
		w.Header().Set("ETag", etag)
		if w.Header().Get("Cache-Control") == "" {
			w.Header().Set("Cache-Control", "private, must-revalidate")
		}

		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		buf.flush()
	})
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// CacheControl sets Cache-Control by route family. Catalog reads are public,
// everything user-specific is private.
func CacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		switch {
		case r.Method != http.MethodGet:
			w.Header().Set("Cache-Control", "no-store")
		case strings.HasPrefix(path, "/api/regions"), strings.HasPrefix(path, "/api/cuisines"):
			w.Header().Set("Cache-Control", "public, max-age=300, must-revalidate")
		case strings.HasPrefix(path, "/api/hotels"),
			strings.HasPrefix(path, "/api/restaurants"),
			strings.HasPrefix(path, "/api/places"),
			strings.HasPrefix(path, "/api/destinations"):
			w.Header().Set("Cache-Control", "public, max-age=60, must-revalidate")
		default:
			w.Header().Set("Cache-Control", "private, no-cache, must-revalidate")
		}

		next.ServeHTTP(w, r)
	})
}

// ResponseOptimization applies cache headers, then compression of the ETag-tagged body
func ResponseOptimization(next http.Handler) http.Handler {
	return CacheControl(Compression(ETag(next)))
}
