package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/debemdeboas/swipestate/internal/config"
	"github.com/debemdeboas/swipestate/internal/db"
	"github.com/debemdeboas/swipestate/internal/util/compression"
)

// Open builds the backend named by cfg and returns an Adapter over it.
func Open(ctx context.Context, cfg config.StorageConfig) (*Adapter, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewAdapter(backend, time.Duration(cfg.TimeoutSeconds)*time.Second), nil
}

// OpenBackend builds the backend named by cfg behind the configured
// compression. Blobs already stored in another format remain readable.
func OpenBackend(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	compressor, err := compression.ByName(cfg.Compression)
	if err != nil {
		return nil, err
	}

	var backend Backend
	switch cfg.Backend {
	case "memory":
		backend = NewMemoryBackend()
	case "fs":
		backend, err = NewFSBackend(cfg.FS.Dir)
	case "sqlite":
		database := db.NewSQLite(cfg.SQLite.Path)
		if err = database.InitDB(); err != nil {
			database.Close()
			err = fmt.Errorf("sqlite: %w", err)
			break
		}
		backend = NewSQLiteBackend(database)
	case "s3":
		backend, err = NewS3Backend(ctx, cfg.S3)
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		if closer, ok := compressor.(io.Closer); ok {
			closer.Close()
		}
		return nil, err
	}

	storageLogger.Info().
		Str("backend", cfg.Backend).
		Str("compression", compressor.Name()).
		Msg("Storage opened")

	return Compressed(backend, compressor), nil
}
