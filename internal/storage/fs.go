package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/debemdeboas/swipestate/internal/util"
)

// FSBackend stores one file per key under dir.
type FSBackend struct {
	dir string
}

func NewFSBackend(dir string) (*FSBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fs: create %s: %w", dir, err)
	}
	return &FSBackend{dir: dir}, nil
}

func (b *FSBackend) path(key string) string {
	return filepath.Join(b.dir, util.SafeName(key))
}

func (b *FSBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("fs: %w", ErrNotFound)
	}
	return data, err
}

// Put writes to a temp file and renames it over the old one, so a crash
// never leaves a half-written blob behind.
func (b *FSBackend) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(b.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path(key))
}

// Keys skips files that were not written by Put, such as leftover temp files.
func (b *FSBackend) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, fmt.Errorf("fs: list %s: %w", b.dir, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if key, ok := util.KeyFromName(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (b *FSBackend) Close() error {
	return nil
}
