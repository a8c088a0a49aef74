// Package kv provides the key-value storage that budgetkeeper keeps all its
// state in. Values are opaque byte slices; callers store JSON documents.
//
// Backends:
//   - SQLStore on SQLite (default, a local file) or PostgreSQL, schema managed
//     by embedded goose migrations;
//   - RedisStore, keys namespaced by a prefix;
//   - MemoryStore, used for per-process session state and in tests.
//
// Writes replace whole values. There is no compare-and-swap: two processes
// writing the same key concurrently lose one of the writes.
package kv

import "context"

// Store is a flat key-value store.
type Store interface {
	// Get returns the value for key, or (nil, nil) if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the given keys. Absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// List returns every key with its value.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
