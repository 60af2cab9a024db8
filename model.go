package ueformat

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Packed wire strides for block-read chunks.
const (
	weightStride     = 10 // int16 bone + int32 vertex + float32 amount
	morphDeltaStride = 28 // float32x3 position + float32x3 normal + int32 vertex

	// Minimum encoded footprint of variable-size records, used to bound
	// allocations before decoding: a string costs at least its 4-byte
	// length prefix.
	minVertexColorSize = 8  // name prefix + array length
	minTexCoordSize    = 4  // array length
	minMaterialSize    = 12 // name prefix + first index + face count
	minMorphSize       = 8  // name prefix + delta count
)

// parseModel walks the payload as a sequence of sections, each headed by
// a name, an element count and a declared byte size. LODS sections are
// decoded; anything else is skipped by advancing exactly the declared
// size, which is the format's forward-compatibility contract.
func parseModel(m *Model, payload []byte, limits Limits, stats *Stats) error {
	b := &bufReader{data: payload, limits: limits}
	for b.remaining() > 0 {
		name, err := b.string()
		if err != nil {
			return err
		}
		count, err := b.int32()
		if err != nil {
			return err
		}
		size, err := b.int32()
		if err != nil {
			return err
		}

		switch name {
		case SectionLODs:
			start := b.off
			lods, err := parseLODs(b, count, stats)
			if err != nil {
				return err
			}
			if consumed := b.off - start; consumed != int(size) {
				return fmt.Errorf("%w: section %q declares %d bytes, decoded %d",
					ErrCorrupt, name, size, consumed)
			}
			m.LODs = append(m.LODs, lods...)
		default:
			stats.SectionsSkipped++
			if err := b.skip(int(size)); err != nil {
				return fmt.Errorf("skipping section %q: %w", name, err)
			}
		}
	}
	return nil
}

func parseLODs(b *bufReader, count int32, stats *Stats) ([]LOD, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative LOD count %d", ErrCorrupt, count)
	}
	if count > b.limits.MaxLODs {
		return nil, fmt.Errorf("%w: %d LODs", ErrLimitExceeded, count)
	}
	lods := make([]LOD, int(count))
	for i := range lods {
		if err := parseLOD(&lods[i], b, stats); err != nil {
			return nil, fmt.Errorf("lod %d: %w", i, err)
		}
	}
	return lods, nil
}

// parseLOD decodes one LOD entry: its name, the declared byte size of
// its chunk list, then chunks until exactly that many bytes are consumed.
func parseLOD(lod *LOD, b *bufReader, stats *Stats) error {
	name, err := b.string()
	if err != nil {
		return err
	}
	lod.Name = name

	size, err := b.int32()
	if err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("%w: negative chunk list size %d", ErrCorrupt, size)
	}
	end := b.off + int(size)
	if end > len(b.data) {
		return fmt.Errorf("%w: chunk list of %d bytes at offset %d, %d remain",
			ErrTruncated, size, b.off, b.remaining())
	}

	for b.off < end {
		if err := parseChunk(lod, b, stats); err != nil {
			return err
		}
	}
	if b.off != end {
		return fmt.Errorf("%w: chunk list overran declared size by %d bytes",
			ErrCorrupt, b.off-end)
	}
	return nil
}

// parseChunk decodes one chunk header and body. The declared byte size
// is authoritative for skipped chunks and is cross-checked against the
// bytes actually consumed by explicit decoders; a mismatch means either
// the file is damaged or it was written by an incompatible exporter, and
// continuing would desynchronize every chunk after it.
func parseChunk(lod *LOD, b *bufReader, stats *Stats) error {
	name, err := b.string()
	if err != nil {
		return err
	}
	count, err := b.int32()
	if err != nil {
		return err
	}
	size, err := b.int32()
	if err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("%w: chunk %q declares negative size %d", ErrCorrupt, name, size)
	}

	start := b.off
	switch chunkKinds[name] {
	case chunkVertices:
		lod.Vertices, err = b.vec3Array(count)
	case chunkIndices:
		lod.Indices, err = b.int32Array(count)
	case chunkNormals:
		lod.Normals, err = b.vec4Array(count)
	case chunkTangents:
		// Present in the format but not consumed; skip by declared size.
		err = b.skip(int(size))
	case chunkVertexColors:
		lod.VertexColors, err = parseVertexColors(b, count)
	case chunkTexCoords:
		lod.TexCoords, err = parseTexCoords(b, count)
	case chunkMaterials:
		lod.Materials, err = parseMaterials(b, count)
	case chunkWeights:
		lod.Weights, err = parseWeights(b, count)
	case chunkMorphTargets:
		lod.Morphs, err = parseMorphTargets(b, count)
	default:
		stats.ChunksSkipped++
		err = b.skip(int(size))
	}
	if err != nil {
		return fmt.Errorf("chunk %q: %w", name, err)
	}

	if consumed := b.off - start; consumed != int(size) {
		return fmt.Errorf("%w: chunk %q declares %d bytes, decoded %d",
			ErrCorrupt, name, size, consumed)
	}
	return nil
}

func parseVertexColors(b *bufReader, count int32) ([]VertexColorChannel, error) {
	n, err := b.checkCount(count, minVertexColorSize)
	if err != nil {
		return nil, err
	}
	out := make([]VertexColorChannel, n)
	for i := range out {
		if out[i].Name, err = b.string(); err != nil {
			return nil, err
		}
		length, err := b.int32()
		if err != nil {
			return nil, err
		}
		if out[i].Data, err = b.colorArray(length); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseTexCoords(b *bufReader, count int32) ([][]mgl32.Vec2, error) {
	n, err := b.checkCount(count, minTexCoordSize)
	if err != nil {
		return nil, err
	}
	out := make([][]mgl32.Vec2, n)
	for i := range out {
		length, err := b.int32()
		if err != nil {
			return nil, err
		}
		if out[i], err = b.vec2Array(length); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseMaterials(b *bufReader, count int32) ([]Material, error) {
	n, err := b.checkCount(count, minMaterialSize)
	if err != nil {
		return nil, err
	}
	out := make([]Material, n)
	for i := range out {
		if out[i].Name, err = b.string(); err != nil {
			return nil, err
		}
		if out[i].FirstIndex, err = b.int32(); err != nil {
			return nil, err
		}
		if out[i].NumFaces, err = b.int32(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseWeights reads the weight list as one contiguous block of packed
// 10-byte entries.
func parseWeights(b *bufReader, count int32) ([]Weight, error) {
	n, err := b.checkCount(count, weightStride)
	if err != nil {
		return nil, err
	}
	p, err := b.take(n * weightStride)
	if err != nil {
		return nil, err
	}
	out := make([]Weight, n)
	for i := range out {
		o := i * weightStride
		out[i] = Weight{
			BoneIndex:   int16(binary.LittleEndian.Uint16(p[o:])),
			VertexIndex: int32(binary.LittleEndian.Uint32(p[o+2:])),
			Amount:      math.Float32frombits(binary.LittleEndian.Uint32(p[o+6:])),
		}
	}
	return out, nil
}

func parseMorphTargets(b *bufReader, count int32) ([]MorphTarget, error) {
	n, err := b.checkCount(count, minMorphSize)
	if err != nil {
		return nil, err
	}
	out := make([]MorphTarget, n)
	for i := range out {
		if out[i].Name, err = b.string(); err != nil {
			return nil, err
		}
		deltas, err := b.int32()
		if err != nil {
			return nil, err
		}
		if out[i].Deltas, err = parseMorphDeltas(b, deltas); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseMorphDeltas reads delta records as one contiguous block of packed
// 28-byte entries.
func parseMorphDeltas(b *bufReader, count int32) ([]MorphDelta, error) {
	n, err := b.checkCount(count, morphDeltaStride)
	if err != nil {
		return nil, err
	}
	p, err := b.take(n * morphDeltaStride)
	if err != nil {
		return nil, err
	}
	out := make([]MorphDelta, n)
	for i := range out {
		o := i * morphDeltaStride
		out[i] = MorphDelta{
			Position:    mgl32.Vec3{f32(p[o:]), f32(p[o+4:]), f32(p[o+8:])},
			Normal:      mgl32.Vec3{f32(p[o+12:]), f32(p[o+16:]), f32(p[o+20:])},
			VertexIndex: int32(binary.LittleEndian.Uint32(p[o+24:])),
		}
	}
	return out, nil
}
