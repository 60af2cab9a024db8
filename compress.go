package ueformat

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Decompressor expands a compressed payload. Implementations may return
// fewer or more bytes than uncompressedSize; Decode verifies the exact
// length afterwards and fails with ErrSizeMismatch on any difference.
type Decompressor func(in []byte, uncompressedSize int) ([]byte, error)

// Algorithm names as they appear in file headers. ZSTD is what current
// exporters emit; the rest are recognized through the same registry.
const (
	CompressionZSTD   = "ZSTD"
	CompressionGZIP   = "GZIP"
	CompressionLZ4    = "LZ4"
	CompressionBrotli = "BROTLI"
)

// Function variables for testing injection.
var (
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	readAll       = io.ReadAll
)

func builtinDecompressors() map[string]Decompressor {
	return map[string]Decompressor{
		CompressionZSTD:   zstdDecompress,
		CompressionGZIP:   gzipDecompress,
		CompressionLZ4:    lz4Decompress,
		CompressionBrotli: brotliDecompress,
	}
}

func zstdDecompress(in []byte, uncompressedSize int) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, err
	}
	if len(out) > uncompressedSize {
		return nil, fmt.Errorf("%w: zstd expanded to %d, declared %d",
			ErrSizeMismatch, len(out), uncompressedSize)
	}
	return out, nil
}

func gzipDecompress(in []byte, uncompressedSize int) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return boundedReadAll(r, uncompressedSize, "gzip")
}

func lz4Decompress(in []byte, uncompressedSize int) ([]byte, error) {
	return boundedReadAll(lz4.NewReader(bytes.NewReader(in)), uncompressedSize, "lz4")
}

func brotliDecompress(in []byte, uncompressedSize int) ([]byte, error) {
	return boundedReadAll(brotli.NewReader(bytes.NewReader(in)), uncompressedSize, "brotli")
}

// boundedReadAll drains r but refuses to expand past the declared size,
// so a hostile stream cannot balloon memory beyond the header's claim.
func boundedReadAll(r io.Reader, uncompressedSize int, algo string) ([]byte, error) {
	b, err := readAll(io.LimitReader(r, int64(uncompressedSize)+1))
	if err != nil {
		return nil, err
	}
	if len(b) > uncompressedSize {
		return nil, fmt.Errorf("%w: %s expanded beyond declared %d bytes",
			ErrSizeMismatch, algo, uncompressedSize)
	}
	return b, nil
}
