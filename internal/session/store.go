// Package session tracks live player profiles between requests. The
// profile id doubles as the durable snapshot namespace.
package session

import "context"

// Store keeps per-profile values keyed by opaque ids.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	// NewID mints a fresh profile id.
	NewID() string
}
