package ueformat

import "time"

// Stats collects counters for a single Decode call. Pass a Stats via
// WithStats to receive them; the library itself never logs or prints.
type Stats struct {
	ReadDuration       time.Duration // reading the stored payload
	DecompressDuration time.Duration
	ParseDuration      time.Duration // structural chunk parsing
	CompressedBytes    int
	UncompressedBytes  int
	SectionsSkipped    int // unrecognized top-level sections
	ChunksSkipped      int // unrecognized per-LOD chunks
}

type readConfig struct {
	limits        Limits
	decompressors map[string]Decompressor
	stats         *Stats
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithDecompressor registers fn for the given algorithm name as it
// appears in file headers (e.g. "ZSTD"), replacing any built-in entry
// with the same name.
func WithDecompressor(name string, fn Decompressor) ReadOption {
	return func(c *readConfig) { c.decompressors[name] = fn }
}

func WithStats(s *Stats) ReadOption {
	return func(c *readConfig) { c.stats = s }
}
