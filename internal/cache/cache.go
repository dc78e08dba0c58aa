package cache

import "github.com/pkg/errors"

// ErrNotFound is returned by Get when a key has never been written or was
// deleted.
var ErrNotFound = errors.New("cache: key not found")

// Store is the persistence boundary for session state. Each state slice is
// written under its own key so a failing write on one slice never blocks the
// others. The browser's local storage in the original client maps to the
// file-backed implementation here; tests use the in-memory one.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}
