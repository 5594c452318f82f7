// Package metadata is the key/value storage behind the session store.
// The SQLite implementation is used by the CLI; the in-memory one backs
// tests and throwaway sessions.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key. SetAll and DeleteAll apply all their changes or none.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
