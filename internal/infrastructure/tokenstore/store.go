// Package tokenstore persists the single bearer credential the client keeps between runs.
package tokenstore

import (
	"context"
	"errors"
)

// TokenKey is the key the bearer token is stored under.
const TokenKey = "token"

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("tokenstore: key not found")

// Store is a small persistent key-value store.
// Concurrent writers are last-write-wins. Reads see the latest completed write.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
