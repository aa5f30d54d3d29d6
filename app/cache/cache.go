// Package cache provides the full-page response cache used by the index
// view: an explicit key -> (bytes, expiry) store behind an interface.
package cache

import (
	"context"
	"time"
)

// PageStore stores rendered response bodies with a time-to-live.
// Implementations must fail open: a backend error on Get is reported as a
// plain miss and a failed Set is dropped silently, so cache trouble can
// never fail a request.
type PageStore interface {
	// Get returns the stored body for key, or ok=false on miss, expiry
	// or backend error.
	Get(ctx context.Context, key string) (body []byte, ok bool)

	// Set stores body under key for the given TTL. Best effort.
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)

	// Clear drops every stored page. Best effort.
	Clear(ctx context.Context)
}
