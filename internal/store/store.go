package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a key that was never set
var ErrNotFound = errors.New("preference not found")

// Store persists user preferences as string key/value pairs
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open creates the store selected by driver ("memory" or "sqlite")
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", "sqlite":
		return NewSQLiteStore(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
