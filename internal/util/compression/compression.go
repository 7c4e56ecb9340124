// Package compression provides the codecs used to shrink stored blobs at rest.
package compression

import (
	"bytes"
	"fmt"
)

type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

const (
	None = "none"
	Gzip = "gzip"
	Zstd = "zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// NoneCompressor passes data through untouched.
type NoneCompressor struct{}

func (NoneCompressor) Name() string                           { return None }
func (NoneCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoneCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

// ByName returns the compressor for name. A zstd compressor must be closed
// once it is no longer used.
func ByName(name string) (Compressor, error) {
	switch name {
	case "", None:
		return NoneCompressor{}, nil
	case Gzip:
		return GzipCompressor{}, nil
	case Zstd:
		return NewZstdCompressor()
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

// Detect names the format data was compressed with, judging by its magic
// bytes. Anything else, JSON text included, is None.
func Detect(data []byte) string {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, gzipMagic):
		return Gzip
	default:
		return None
	}
}
