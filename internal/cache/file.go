package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// File persists each key as one JSON file inside dir. Writes go through a
// temp file and rename so a crash mid-write never leaves a truncated slice.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "reading cache key %q", key)
	}
	return data, nil
}

func (f *File) Set(key string, value []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return errors.Wrapf(err, "writing cache key %q", key)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return errors.Wrapf(err, "committing cache key %q", key)
	}
	return nil
}

func (f *File) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting cache key %q", key)
	}
	return nil
}

func (f *File) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, errors.Wrap(err, "listing cache directory")
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
