package middleware

import (
	"bytes"
	"net/http"
	"time"

	"scrawl/app/cache"
)

// bodyRecorder captures a handler's response so it can be stored.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (rec *bodyRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *bodyRecorder) Write(p []byte) (int, error) {
	rec.body = append(rec.body, p...)
	return rec.ResponseWriter.Write(p)
}

// cacheKey builds the store key for a request. Handlers negotiate HTML
// vs JSON on the Accept header, so the surface is part of the key; the
// two representations of one URI cache independently.
func cacheKey(r *http.Request) string {
	surface := "html"
	if r.Header.Get("Accept") == "application/json" {
		surface = "json"
	}
	return r.URL.RequestURI() + "|" + surface
}

// Stored entries are "<content-type>\n<body>" so a hit can replay the
// negotiated Content-Type along with the bytes.
func encodeEntry(contentType string, body []byte) []byte {
	entry := make([]byte, 0, len(contentType)+1+len(body))
	entry = append(entry, contentType...)
	entry = append(entry, '\n')
	return append(entry, body...)
}

func decodeEntry(entry []byte) (contentType string, body []byte, ok bool) {
	i := bytes.IndexByte(entry, '\n')
	if i < 0 {
		return "", nil, false
	}
	return string(entry[:i]), entry[i+1:], true
}

// CachePage serves successful GET responses from the page store for the
// TTL window. Mutations do not invalidate entries; staleness is bounded
// only by the TTL, and a broken cache backend just means every request
// renders live.
func CachePage(store cache.PageStore, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r)
			if entry, ok := store.Get(r.Context(), key); ok {
				if contentType, body, ok := decodeEntry(entry); ok {
					if contentType != "" {
						w.Header().Set("Content-Type", contentType)
					}
					w.Write(body)
					return
				}
			}

			rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				entry := encodeEntry(rec.Header().Get("Content-Type"), rec.body)
				store.Set(r.Context(), key, entry, ttl)
			}
		})
	}
}
