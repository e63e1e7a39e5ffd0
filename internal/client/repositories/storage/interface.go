package storage

import (
	"context"
	"errors"
)

var (
	ErrInvalidKey     = errors.New("invalid storage key")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Repository is a byte-valued key/value store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// UpdateFunc receives the current value (nil when absent) and returns the
// value to store. Returning an error aborts the update and leaves the key
// untouched.
type UpdateFunc func(old []byte) ([]byte, error)

// Updater performs an atomic read-modify-write of one key.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
