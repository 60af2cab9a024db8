package ueformat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// Decode reads a UEFormat file from r.
//
// The decoding process:
//  1. Reads and validates the envelope: magic, identifier, version byte,
//     object name, compression flag and (if set) compression metadata
//  2. Materializes the payload: reads exactly CompressedSize bytes and
//     decompresses them to exactly UncompressedSize bytes, or reads the
//     rest of the stream verbatim for uncompressed files
//  3. Parses the payload as self-delimited sections when the identifier
//     is IdentifierModel; other identifiers yield a Model with no LODs
//
// Unknown sections and chunks are skipped by their declared byte size;
// they are the format's forward-compatibility mechanism, never an error.
//
// Decode returns ErrBadMagic if the file is not a UEFORMAT file,
// ErrUnsupportedVersion for version bytes outside [MinVersion, MaxVersion],
// ErrUnsupportedCompression for unregistered algorithm names,
// ErrSizeMismatch if decompression does not produce the declared size,
// ErrTruncated or ErrCorrupt for structural damage, and ErrLimitExceeded
// when a declared length exceeds the configured Limits. Any failure
// aborts the whole parse; no partial Model is returned.
//
// Use ReadOption functions to customize behavior:
//   - WithReadLimits(l): set custom size limits
//   - WithDecompressor(name, fn): register or replace an algorithm
//   - WithStats(s): collect timing and size counters
func Decode(r io.Reader, opts ...ReadOption) (*Model, error) {
	cfg := readConfig{limits: defaultLimits(), decompressors: builtinDecompressors()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.stats == nil {
		cfg.stats = &Stats{}
	}

	sr := &streamReader{r: r, limits: cfg.limits}
	hdr, err := readHeader(sr)
	if err != nil {
		return nil, err
	}

	payload, err := readPayload(sr, hdr, &cfg)
	if err != nil {
		return nil, err
	}

	model := &Model{Header: hdr}
	if hdr.Identifier == IdentifierModel {
		start := time.Now()
		err = parseModel(model, payload, cfg.limits, cfg.stats)
		cfg.stats.ParseDuration = time.Since(start)
		if err != nil {
			return nil, err
		}
	}
	return model, nil
}

// DecodeFile opens path and decodes it. The file handle is released
// before DecodeFile returns, success or not.
func DecodeFile(path string, opts ...ReadOption) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f), opts...)
}

// readPayload materializes the decompressed payload in memory. For
// compressed files the scratch buffer holding the stored bytes is only
// referenced here and becomes collectable as soon as decompression ends.
func readPayload(s *streamReader, hdr Header, cfg *readConfig) ([]byte, error) {
	if !hdr.IsCompressed {
		start := time.Now()
		payload, err := readAll(io.LimitReader(s.r, cfg.limits.MaxUncompressedSize+1))
		cfg.stats.ReadDuration = time.Since(start)
		if err != nil {
			return nil, err
		}
		if int64(len(payload)) > cfg.limits.MaxUncompressedSize {
			return nil, fmt.Errorf("%w: payload larger than %d bytes",
				ErrLimitExceeded, cfg.limits.MaxUncompressedSize)
		}
		cfg.stats.UncompressedBytes = len(payload)
		return payload, nil
	}

	if int64(hdr.CompressedSize) > cfg.limits.MaxCompressedSize {
		return nil, fmt.Errorf("%w: compressed size %d", ErrLimitExceeded, hdr.CompressedSize)
	}
	if int64(hdr.UncompressedSize) > cfg.limits.MaxUncompressedSize {
		return nil, fmt.Errorf("%w: uncompressed size %d", ErrLimitExceeded, hdr.UncompressedSize)
	}
	decompress, ok := cfg.decompressors[hdr.CompressionType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, hdr.CompressionType)
	}

	start := time.Now()
	compressed, err := s.readBytes(int(hdr.CompressedSize))
	cfg.stats.ReadDuration = time.Since(start)
	if err != nil {
		return nil, err
	}
	cfg.stats.CompressedBytes = len(compressed)

	start = time.Now()
	payload, err := decompress(compressed, int(hdr.UncompressedSize))
	cfg.stats.DecompressDuration = time.Since(start)
	if err != nil {
		return nil, err
	}
	if len(payload) != int(hdr.UncompressedSize) {
		return nil, fmt.Errorf("%w: got %d bytes, declared %d",
			ErrSizeMismatch, len(payload), hdr.UncompressedSize)
	}
	cfg.stats.UncompressedBytes = len(payload)
	return payload, nil
}
