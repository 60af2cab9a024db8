package ueformat

import "github.com/go-gl/mathgl/mgl32"

// Magic is the 8-byte UEFORMAT file signature.
var Magic = [8]byte{'U', 'E', 'F', 'O', 'R', 'M', 'A', 'T'}

// Payload identifiers carried in the header. Only IdentifierModel is
// decoded by this package; files with other identifiers parse to a
// Model with an empty LOD list.
const (
	IdentifierModel = "UEMODEL"
	IdentifierAnim  = "UEANIM"
	IdentifierWorld = "UEWORLD"
)

// Format revisions, by header version byte.
const (
	VersionSerializeBinormalSign    uint8 = 1
	VersionAddMultipleVertexColors  uint8 = 2
	VersionAddConvexCollisionGeom   uint8 = 3
	VersionLevelOfDetailRestructure uint8 = 4
	VersionSerializeVirtualBones    uint8 = 5
)

// MinVersion..MaxVersion is the window this reader accepts. The
// per-LOD section layout decoded here was introduced in revision 4.
const (
	MinVersion = VersionLevelOfDetailRestructure
	MaxVersion = VersionSerializeVirtualBones
)

// Top-level section names.
const (
	SectionLODs      = "LODS"
	SectionSkeleton  = "SKELETON"
	SectionCollision = "COLLISION"
)

// chunkKind is the closed set of per-LOD chunk types. Names read from
// the file are mapped to a kind once, then dispatched on.
type chunkKind uint8

const (
	chunkUnknown chunkKind = iota
	chunkVertices
	chunkIndices
	chunkNormals
	chunkTangents
	chunkVertexColors
	chunkTexCoords
	chunkMaterials
	chunkWeights
	chunkMorphTargets
)

var chunkKinds = map[string]chunkKind{
	"VERTICES":     chunkVertices,
	"INDICES":      chunkIndices,
	"NORMALS":      chunkNormals,
	"TANGENTS":     chunkTangents,
	"VERTEXCOLORS": chunkVertexColors,
	"TEXCOORDS":    chunkTexCoords,
	"MATERIALS":    chunkMaterials,
	"WEIGHTS":      chunkWeights,
	"MORPHTARGETS": chunkMorphTargets,
}

// Header is the file envelope preceding the (possibly compressed) payload.
// UncompressedSize and CompressedSize are only present in the stream when
// IsCompressed is set.
type Header struct {
	Identifier       string
	Version          uint8
	ObjectName       string
	IsCompressed     bool
	CompressionType  string
	UncompressedSize int32
	CompressedSize   int32
}

// Model is a fully parsed UEFormat model payload. The tree is built once
// per Decode call and owned by the caller afterwards.
type Model struct {
	Header   Header
	LODs     []LOD
	Skeleton Skeleton
}

// LOD is one level-of-detail mesh. Indices is a flat triangle list,
// stride 3, indexing into Vertices.
type LOD struct {
	Name         string
	Vertices     []mgl32.Vec3
	Indices      []int32
	Normals      []mgl32.Vec4 // serialized component order is W,X,Y,Z
	VertexColors []VertexColorChannel
	TexCoords    [][]mgl32.Vec2
	Materials    []Material
	Weights      []Weight
	Morphs       []MorphTarget
}

// Color is an RGBA vertex color as stored, one byte per component.
type Color [4]uint8

// VertexColorChannel is a named per-vertex color layer.
type VertexColorChannel struct {
	Name string
	Data []Color
}

// Material assigns a contiguous face range of the index buffer to one
// material slot. Ranges are ordered by increasing FirstIndex and do not
// overlap; the last range extends to the end of the index buffer.
type Material struct {
	Name       string
	FirstIndex int32
	NumFaces   int32
}

// Weight is one bone influence. The list is flat, not grouped by vertex;
// use LOD.WeightsByVertex to group.
type Weight struct {
	BoneIndex   int16
	VertexIndex int32
	Amount      float32
}

// MorphDelta is a sparse per-vertex offset of a morph target.
type MorphDelta struct {
	Position    mgl32.Vec3
	Normal      mgl32.Vec3
	VertexIndex int32
}

// MorphTarget is a named alternate shape, stored as deltas for the
// affected vertices only.
type MorphTarget struct {
	Name   string
	Deltas []MorphDelta
}

// Bone and Socket mirror the skeleton records the format defines.
// SKELETON sections are currently skipped, not decoded.
type Bone struct {
	Name        string
	ParentIndex int32
	Position    mgl32.Vec3
	Rotation    mgl32.Vec4
}

type Socket struct {
	Name       string
	ParentName string
	Position   mgl32.Vec4
	Rotation   mgl32.Vec4
	Scale      mgl32.Vec3
}

type Skeleton struct {
	Bones   []Bone
	Sockets []Socket
}

// FaceCount returns the number of triangles in the index buffer.
func (l *LOD) FaceCount() int { return len(l.Indices) / 3 }

// MaterialForFace returns the index into Materials owning the given
// triangle, or -1 when the LOD has no materials. Each material covers
// faces from its FirstIndex up to the next material's FirstIndex; the
// last material extends to the end of the index buffer.
func (l *LOD) MaterialForFace(face int) int {
	mat := -1
	for i := range l.Materials {
		if int(l.Materials[i].FirstIndex) > face {
			break
		}
		mat = i
	}
	return mat
}

// UnpackedNormals converts the stored (W,X,Y,Z) normals to (X,Y,Z),
// discarding W.
func (l *LOD) UnpackedNormals() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(l.Normals))
	for i, n := range l.Normals {
		out[i] = mgl32.Vec3{n[1], n[2], n[3]}
	}
	return out
}

// WeightsByVertex groups the flat weight list by vertex index.
func (l *LOD) WeightsByVertex() map[int32][]Weight {
	out := make(map[int32][]Weight)
	for _, w := range l.Weights {
		out[w.VertexIndex] = append(out[w.VertexIndex], w)
	}
	return out
}
