package ueformat

import (
	"encoding/binary"
	"fmt"
	"io"
)

// streamReader provides the sequential little-endian primitives used by
// the container reader. Structural parsing of the payload uses the
// offset-indexed bufReader instead.
type streamReader struct {
	r      io.Reader
	limits Limits
}

func (s *streamReader) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *streamReader) readUint8() (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (s *streamReader) readInt32() (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// readString reads a 4-byte signed length followed by that many raw
// bytes. There is no terminator and no encoding validation.
func (s *streamReader) readString() (string, error) {
	n, err := s.readInt32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length %d", ErrCorrupt, n)
	}
	if n > s.limits.MaxStringLen {
		return "", fmt.Errorf("%w: string length %d", ErrLimitExceeded, n)
	}
	b, err := s.readBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readHeader reads and validates the file envelope up to the start of
// the payload. A magic mismatch aborts before any further field is read.
func readHeader(s *streamReader) (Header, error) {
	var h Header

	magic, err := s.readBytes(len(Magic))
	if err != nil {
		return h, err
	}
	if [8]byte(magic) != Magic {
		return h, ErrBadMagic
	}

	if h.Identifier, err = s.readString(); err != nil {
		return h, err
	}
	if h.Version, err = s.readUint8(); err != nil {
		return h, err
	}
	if h.Version < MinVersion || h.Version > MaxVersion {
		return h, fmt.Errorf("%w: version %d, supported %d..%d",
			ErrUnsupportedVersion, h.Version, MinVersion, MaxVersion)
	}
	if h.ObjectName, err = s.readString(); err != nil {
		return h, err
	}
	flag, err := s.readUint8()
	if err != nil {
		return h, err
	}
	h.IsCompressed = flag != 0

	if h.IsCompressed {
		if h.CompressionType, err = s.readString(); err != nil {
			return h, err
		}
		if h.UncompressedSize, err = s.readInt32(); err != nil {
			return h, err
		}
		if h.CompressedSize, err = s.readInt32(); err != nil {
			return h, err
		}
		if h.UncompressedSize < 0 || h.CompressedSize < 0 {
			return h, fmt.Errorf("%w: negative payload size", ErrCorrupt)
		}
	}
	return h, nil
}
