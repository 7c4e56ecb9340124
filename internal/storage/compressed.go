package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/debemdeboas/swipestate/internal/util/compression"
)

type compressedBackend struct {
	Backend
	compressor compression.Compressor
}

// Compressed stores values through compressor and takes ownership of it.
//
// Reads look at the stored bytes rather than the configured format, so blobs
// written uncompressed or with another codec stay readable after the
// configured compression changes. Content that carries a codec's magic bytes
// but fails to decompress is reported as a read error, never as a value.
func Compressed(backend Backend, compressor compression.Compressor) Backend {
	return &compressedBackend{Backend: backend, compressor: compressor}
}

func (b *compressedBackend) Get(ctx context.Context, key string) ([]byte, error) {
	packed, err := b.Backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var value []byte
	switch format := compression.Detect(packed); format {
	case b.compressor.Name():
		value, err = b.compressor.Decompress(packed)
	case compression.None:
		return packed, nil
	default:
		value, err = decompressWith(format, packed)
	}
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return value, nil
}

func decompressWith(format string, packed []byte) ([]byte, error) {
	c, err := compression.ByName(format)
	if err != nil {
		return nil, err
	}
	if closer, ok := c.(io.Closer); ok {
		defer closer.Close()
	}
	return c.Decompress(packed)
}

func (b *compressedBackend) Put(ctx context.Context, key string, value []byte) error {
	packed, err := b.compressor.Compress(value)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	return b.Backend.Put(ctx, key, packed)
}

func (b *compressedBackend) Close() error {
	err := b.Backend.Close()
	if closer, ok := b.compressor.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}
	return err
}
