package compression

import "github.com/klauspost/compress/zstd"

// ZstdCompressor holds one encoder and one decoder for its whole lifetime.
// EncodeAll and DecodeAll are safe for concurrent use.
type ZstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewZstdCompressor() (*ZstdCompressor, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, err
	}
	return &ZstdCompressor{encoder: encoder, decoder: decoder}, nil
}

func (z *ZstdCompressor) Name() string { return Zstd }

// Close stops the encoder and decoder goroutines. The compressor is unusable
// afterwards.
func (z *ZstdCompressor) Close() error {
	z.decoder.Close()
	return z.encoder.Close()
}

func (z *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return z.encoder.EncodeAll(data, nil), nil
}

func (z *ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return z.decoder.DecodeAll(data, nil)
}
