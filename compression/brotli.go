// Package compression wraps the brotli coding used for Arkiv transaction
// payloads.
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

// Quality level used for packing. The chain accepts any valid brotli stream;
// the level only trades submission size against encoding time.
const compressionQuality = 9

// BrotliCompress compresses data with the V2 encoder. Empty input yields
// empty output.
func BrotliCompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	buf := &bytes.Buffer{}
	writer := brotli.NewWriterV2(buf, compressionQuality)

	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write data to brotli compressor: %w", err)
	}
	// Close flushes the final block; its error is the one that matters.
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close brotli compressor: %w", err)
	}

	return buf.Bytes(), nil
}

// MustBrotliCompress is BrotliCompress for static inputs known to compress.
func MustBrotliCompress(data []byte) []byte {
	compressed, err := BrotliCompress(data)
	if err != nil {
		panic(fmt.Errorf("failed to compress data: %w", err))
	}
	return compressed
}

// BrotliDecompress is the inverse of BrotliCompress. Unlike the transaction
// unpacker it applies no size cap; callers feeding it untrusted data should
// wrap their own limit around it.
func BrotliDecompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	d, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress data: %w", err)
	}
	return d, nil
}
