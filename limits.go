package ueformat

// Limits caps allocations driven by lengths and counts read from the
// file. All values are enforced before memory is reserved.
type Limits struct {
	MaxCompressedSize   int64 // compressed payload bytes as stored in file
	MaxUncompressedSize int64 // payload bytes after decompression
	MaxStringLen        int32 // any length-prefixed string
	MaxElementCount     int32 // elements in any single chunk or sub-array
	MaxLODs             int32
}

func defaultLimits() Limits {
	return Limits{
		MaxCompressedSize:   1 << 30, // 1 GiB
		MaxUncompressedSize: 2 << 30, // 2 GiB
		MaxStringLen:        1 << 16,
		MaxElementCount:     64 << 20,
		MaxLODs:             256,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxCompressedSize == 0 {
		l.MaxCompressedSize = d.MaxCompressedSize
	}
	if l.MaxUncompressedSize == 0 {
		l.MaxUncompressedSize = d.MaxUncompressedSize
	}
	if l.MaxStringLen == 0 {
		l.MaxStringLen = d.MaxStringLen
	}
	if l.MaxElementCount == 0 {
		l.MaxElementCount = d.MaxElementCount
	}
	if l.MaxLODs == 0 {
		l.MaxLODs = d.MaxLODs
	}
	return l
}
