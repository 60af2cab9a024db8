package ueformat

import "errors"

var (
	ErrBadMagic               = errors.New("ueformat: bad magic")
	ErrUnsupportedVersion     = errors.New("ueformat: unsupported version")
	ErrUnsupportedCompression = errors.New("ueformat: unsupported compression")
	ErrSizeMismatch           = errors.New("ueformat: decompressed size mismatch")
	ErrTruncated              = errors.New("ueformat: truncated data")
	ErrCorrupt                = errors.New("ueformat: corrupt data")
	ErrLimitExceeded          = errors.New("ueformat: limit exceeded")
)
