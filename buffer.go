package ueformat

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// bufReader walks the decompressed payload by offset. Every length and
// count read from the payload is untrusted and is checked against the
// remaining bytes before anything is allocated or copied.
type bufReader struct {
	data   []byte
	off    int
	limits Limits
}

func (b *bufReader) remaining() int { return len(b.data) - b.off }

// take returns the next n bytes and advances the offset.
func (b *bufReader) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrCorrupt, n)
	}
	if n > b.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, %d remain",
			ErrTruncated, n, b.off, b.remaining())
	}
	p := b.data[b.off : b.off+n]
	b.off += n
	return p, nil
}

func (b *bufReader) skip(n int) error {
	_, err := b.take(n)
	return err
}

func (b *bufReader) int32() (int32, error) {
	p, err := b.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(p)), nil
}

// string reads a 4-byte signed length followed by that many raw bytes.
func (b *bufReader) string() (string, error) {
	n, err := b.int32()
	if err != nil {
		return "", err
	}
	if n > b.limits.MaxStringLen {
		return "", fmt.Errorf("%w: string length %d", ErrLimitExceeded, n)
	}
	p, err := b.take(int(n))
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// checkCount validates an element count against the limit and against
// the bytes remaining, given the minimum encoded size of one element.
// It guards allocation: a hostile count cannot reserve more memory than
// the payload could possibly back.
func (b *bufReader) checkCount(n int32, minStride int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrCorrupt, n)
	}
	if n > b.limits.MaxElementCount {
		return 0, fmt.Errorf("%w: element count %d", ErrLimitExceeded, n)
	}
	if int64(n)*int64(minStride) > int64(b.remaining()) {
		return 0, fmt.Errorf("%w: %d elements of %d+ bytes at offset %d, %d remain",
			ErrTruncated, n, minStride, b.off, b.remaining())
	}
	return int(n), nil
}

func (b *bufReader) int32Array(n int32) ([]int32, error) {
	count, err := b.checkCount(n, 4)
	if err != nil {
		return nil, err
	}
	p, err := b.take(count * 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return out, nil
}

func (b *bufReader) vec2Array(n int32) ([]mgl32.Vec2, error) {
	count, err := b.checkCount(n, 8)
	if err != nil {
		return nil, err
	}
	p, err := b.take(count * 8)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec2, count)
	for i := range out {
		o := i * 8
		out[i] = mgl32.Vec2{f32(p[o:]), f32(p[o+4:])}
	}
	return out, nil
}

func (b *bufReader) vec3Array(n int32) ([]mgl32.Vec3, error) {
	count, err := b.checkCount(n, 12)
	if err != nil {
		return nil, err
	}
	p, err := b.take(count * 12)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec3, count)
	for i := range out {
		o := i * 12
		out[i] = mgl32.Vec3{f32(p[o:]), f32(p[o+4:]), f32(p[o+8:])}
	}
	return out, nil
}

func (b *bufReader) vec4Array(n int32) ([]mgl32.Vec4, error) {
	count, err := b.checkCount(n, 16)
	if err != nil {
		return nil, err
	}
	p, err := b.take(count * 16)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec4, count)
	for i := range out {
		o := i * 16
		out[i] = mgl32.Vec4{f32(p[o:]), f32(p[o+4:]), f32(p[o+8:]), f32(p[o+12:])}
	}
	return out, nil
}

func (b *bufReader) colorArray(n int32) ([]Color, error) {
	count, err := b.checkCount(n, 4)
	if err != nil {
		return nil, err
	}
	p, err := b.take(count * 4)
	if err != nil {
		return nil, err
	}
	out := make([]Color, count)
	for i := range out {
		copy(out[i][:], p[i*4:])
	}
	return out, nil
}

func f32(p []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(p))
}
