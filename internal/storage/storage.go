package storage

import (
	"context"
	"errors"
)

// KV is the persistent key-value port backing the cart and session stores.
// Consumers define what they need; adapters live alongside.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrKeyNotFound = errors.New("key not found")
