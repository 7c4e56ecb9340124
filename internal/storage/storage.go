// Package storage is the string-keyed persistence capability shared by the
// draft store and the interaction cache.
//
// Callers see an infallible synchronous Store. Failures of the underlying
// Backend are wrapped in a *StorageError, logged, and reported to the caller
// as an absent key (on read) or silently dropped (on write).
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound  = errors.New("key not found")
	ErrMalformed = errors.New("malformed content")
)

var storageLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	storageLogger = l
}

// Store is what the draft store and interaction cache depend on.
type Store interface {
	Read(key string) (string, bool)
	Write(key, value string)
}

// Backend is a fallible blob store. Get must return an error wrapping
// ErrNotFound for absent keys. Keys lists every stored key in sorted order.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Adapter implements Store over a Backend.
type Adapter struct {
	backend Backend
	timeout time.Duration
}

// NewAdapter wraps backend. A zero timeout leaves backend calls unbounded.
func NewAdapter(backend Backend, timeout time.Duration) *Adapter {
	return &Adapter{backend: backend, timeout: timeout}
}

func (a *Adapter) newContext() (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *Adapter) Read(key string) (string, bool) {
	ctx, cancel := a.newContext()
	defer cancel()

	value, err := a.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			storageLogger.Error().
				Err(&StorageError{Op: "read", Key: key, Err: err}).
				Msg("Storage read failed, treating key as absent")
		}
		return "", false
	}
	return string(value), true
}

func (a *Adapter) Write(key, value string) {
	ctx, cancel := a.newContext()
	defer cancel()

	if err := a.backend.Put(ctx, key, []byte(value)); err != nil {
		storageLogger.Error().
			Err(&StorageError{Op: "write", Key: key, Err: err}).
			Int("bytes", len(value)).
			Msg("Storage write failed, value dropped")
	}
}

func (a *Adapter) Close() error {
	return a.backend.Close()
}
