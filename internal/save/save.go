// Package save persists the durable slice of the game state as a flat
// key→value snapshot, one namespace per profile.
package save

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested snapshot key is missing.
var ErrNotFound = errors.New("snapshot key not found")

// Store persists durable snapshot fields. Implementations must treat a
// missing key as ErrNotFound, never as a failure.
type Store interface {
	// Put upserts one snapshot field.
	Put(ctx context.Context, profile, key, value string) error
	// PutAll upserts a whole snapshot atomically.
	PutAll(ctx context.Context, profile string, snap map[string]string) error
	// Get fetches one snapshot field.
	Get(ctx context.Context, profile, key string) (string, error)
	// All fetches every snapshot field for a profile.
	All(ctx context.Context, profile string) (map[string]string, error)
	Close() error
}
