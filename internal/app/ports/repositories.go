package ports

import "context"

// SaveStore is the durable key-value store behind the save codec. Get returns
// ErrNotFound when the key has never been written.
type SaveStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
}
