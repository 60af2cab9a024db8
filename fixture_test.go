package ueformat

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
)

// wbuf builds wire-format bytes for test fixtures.
type wbuf struct {
	bytes.Buffer
}

func (w *wbuf) u8(v uint8) { w.WriteByte(v) }

func (w *wbuf) i32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.Write(b[:])
}

func (w *wbuf) f32(v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	w.Write(b[:])
}

func (w *wbuf) i16(v int16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	w.Write(b[:])
}

func (w *wbuf) str(s string) {
	w.i32(int32(len(s)))
	w.WriteString(s)
}

// chunk frames a section or chunk body: name, element count, byte size.
func chunk(name string, count int32, body []byte) []byte {
	var w wbuf
	w.str(name)
	w.i32(count)
	w.i32(int32(len(body)))
	w.Write(body)
	return w.Bytes()
}

// lodEntry frames one LOD: name, chunk-list byte size, chunks.
func lodEntry(name string, chunks []byte) []byte {
	var w wbuf
	w.str(name)
	w.i32(int32(len(chunks)))
	w.Write(chunks)
	return w.Bytes()
}

// sampleLODChunks builds a chunk list exercising every decoded chunk
// type plus a skipped TANGENTS chunk and an unrecognized one.
func sampleLODChunks() []byte {
	var chunks bytes.Buffer

	var verts wbuf
	for _, v := range sampleVertices {
		verts.f32(v[0])
		verts.f32(v[1])
		verts.f32(v[2])
	}
	chunks.Write(chunk("VERTICES", int32(len(sampleVertices)), verts.Bytes()))

	var idx wbuf
	for _, v := range sampleIndices {
		idx.i32(v)
	}
	chunks.Write(chunk("INDICES", int32(len(sampleIndices)), idx.Bytes()))

	var norms wbuf
	for _, n := range sampleNormals {
		norms.f32(n[0]) // W
		norms.f32(n[1]) // X
		norms.f32(n[2]) // Y
		norms.f32(n[3]) // Z
	}
	chunks.Write(chunk("NORMALS", int32(len(sampleNormals)), norms.Bytes()))

	var tan wbuf
	for i := 0; i < len(sampleVertices); i++ {
		tan.f32(1)
		tan.f32(0)
		tan.f32(0)
	}
	chunks.Write(chunk("TANGENTS", int32(len(sampleVertices)), tan.Bytes()))

	var colors wbuf
	colors.str("COL0")
	colors.i32(int32(len(sampleColors)))
	for _, c := range sampleColors {
		colors.Write(c[:])
	}
	chunks.Write(chunk("VERTEXCOLORS", 1, colors.Bytes()))

	var uvs wbuf
	for _, channel := range sampleTexCoords {
		uvs.i32(int32(len(channel)))
		for _, uv := range channel {
			uvs.f32(uv[0])
			uvs.f32(uv[1])
		}
	}
	chunks.Write(chunk("TEXCOORDS", int32(len(sampleTexCoords)), uvs.Bytes()))

	var mats wbuf
	for _, m := range sampleMaterials {
		mats.str(m.Name)
		mats.i32(m.FirstIndex)
		mats.i32(m.NumFaces)
	}
	chunks.Write(chunk("MATERIALS", int32(len(sampleMaterials)), mats.Bytes()))

	var weights wbuf
	for _, w := range sampleWeights {
		weights.i16(w.BoneIndex)
		weights.i32(w.VertexIndex)
		weights.f32(w.Amount)
	}
	chunks.Write(chunk("WEIGHTS", int32(len(sampleWeights)), weights.Bytes()))

	var morphs wbuf
	for _, m := range sampleMorphs {
		morphs.str(m.Name)
		morphs.i32(int32(len(m.Deltas)))
		for _, d := range m.Deltas {
			morphs.f32(d.Position[0])
			morphs.f32(d.Position[1])
			morphs.f32(d.Position[2])
			morphs.f32(d.Normal[0])
			morphs.f32(d.Normal[1])
			morphs.f32(d.Normal[2])
			morphs.i32(d.VertexIndex)
		}
	}
	chunks.Write(chunk("MORPHTARGETS", int32(len(sampleMorphs)), morphs.Bytes()))

	// A chunk type this reader does not know about.
	chunks.Write(chunk("BINORMALSIGNS", 4, []byte{1, 2, 3, 4}))

	return chunks.Bytes()
}

// sampleModelPayload is a LODS section holding one fully populated LOD.
func sampleModelPayload() []byte {
	entry := lodEntry("_LOD0", sampleLODChunks())
	var w wbuf
	w.str(SectionLODs)
	w.i32(1)
	w.i32(int32(len(entry)))
	w.Write(entry)
	return w.Bytes()
}

// container wraps a payload in the file envelope, optionally compressed
// with ZSTD.
func container(identifier string, version uint8, objectName string, payload []byte, compressed bool) []byte {
	var w wbuf
	w.Write(Magic[:])
	w.str(identifier)
	w.u8(version)
	w.str(objectName)
	if !compressed {
		w.u8(0)
		w.Write(payload)
		return w.Bytes()
	}
	w.u8(1)
	w.str(CompressionZSTD)
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	defer enc.Close()
	comp := enc.EncodeAll(payload, nil)
	w.i32(int32(len(payload)))
	w.i32(int32(len(comp)))
	w.Write(comp)
	return w.Bytes()
}

var (
	sampleVertices = [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	sampleIndices = []int32{0, 1, 2, 0, 2, 3}
	// Stored order is W,X,Y,Z.
	sampleNormals = [][4]float32{
		{1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, 1},
	}
	sampleColors = []Color{
		{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}, {255, 255, 255, 255},
	}
	sampleTexCoords = [][][2]float32{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		{{0, 0}, {0.5, 0}, {0.5, 0.5}, {0, 0.5}},
	}
	sampleMaterials = []Material{
		{Name: "MAT_Base", FirstIndex: 0, NumFaces: 1},
		{Name: "MAT_Trim", FirstIndex: 1, NumFaces: 1},
	}
	sampleWeights = []Weight{
		{BoneIndex: 0, VertexIndex: 0, Amount: 0.75},
		{BoneIndex: 3, VertexIndex: 0, Amount: 0.25},
		{BoneIndex: 3, VertexIndex: 2, Amount: 1},
	}
	sampleMorphs = []MorphTarget{
		{
			Name: "Smile",
			Deltas: []MorphDelta{
				{Position: mgl32.Vec3{0, 0.1, 0}, Normal: mgl32.Vec3{0, 1, 0}, VertexIndex: 1},
				{Position: mgl32.Vec3{0, -0.1, 0}, Normal: mgl32.Vec3{0, 1, 0}, VertexIndex: 3},
			},
		},
	}
)
