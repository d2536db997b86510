// Package kvstore provides the namespaced key-value layer every entity
// repository is built on, with in-memory and Postgres backends.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("kvstore: key not found")

// KeyValue persists opaque JSON payloads under string keys. Keys are
// namespaced by prefix; Keys lists a namespace's members in ascending
// key order so callers can page deterministically.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	// SetMulti writes all entries in one pipelined round trip.
	SetMulti(ctx context.Context, entries map[string][]byte) error

	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Count(ctx context.Context, prefix string) (int, error)
}
