package gltf

import (
	"encoding/binary"
	"math"
	"slices"

	gmath "github.com/Faultbox/gltfw/pkg/math"
)

// Builder assembles a Model. Every Add method returns the index of the new
// entity so it can be referenced by later calls.
type Builder struct {
	m Model
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Model returns the assembled model. The Builder keeps sharing it.
func (b *Builder) Model() *Model {
	return &b.m
}

// SetGenerator sets the asset generator.
func (b *Builder) SetGenerator(generator string) {
	b.m.Asset.Generator = Ptr(generator)
}

// SetCopyright sets the asset copyright.
func (b *Builder) SetCopyright(copyright string) {
	b.m.Asset.Copyright = Ptr(copyright)
}

// SetDefaultScene marks scene as the one to display on load.
func (b *Builder) SetDefaultScene(scene int) {
	b.m.DefaultScene = Ptr(scene)
}

// AddScene adds a scene with the given root nodes.
func (b *Builder) AddScene(name string, nodes ...int) int {
	b.m.Scenes = append(b.m.Scenes, Scene{Name: name, Nodes: slices.Clone(nodes)})
	return len(b.m.Scenes) - 1
}

// AddNode adds a node referencing mesh.
func (b *Builder) AddNode(mesh int) int {
	b.m.Nodes = append(b.m.Nodes, Node{Mesh: mesh})
	return len(b.m.Nodes) - 1
}

// AddMesh adds a mesh made of primitives.
func (b *Builder) AddMesh(primitives ...Primitive) int {
	b.m.Meshes = append(b.m.Meshes, Mesh{Primitives: slices.Clone(primitives)})
	return len(b.m.Meshes) - 1
}

// AddBuffer adds a buffer holding data. data is not copied.
func (b *Builder) AddBuffer(data []byte) int {
	b.m.Buffers = append(b.m.Buffers, Buffer{Data: data})
	return len(b.m.Buffers) - 1
}

// AddBufferView adds a view of length bytes at offset within buffer.
func (b *Builder) AddBufferView(buffer, offset, length int, target BufferTarget) int {
	b.m.BufferViews = append(b.m.BufferViews, BufferView{
		Buffer:     buffer,
		ByteOffset: offset,
		ByteLength: length,
		Target:     target,
	})
	return len(b.m.BufferViews) - 1
}

// AddAccessor adds an accessor.
func (b *Builder) AddAccessor(a Accessor) int {
	b.m.Accessors = append(b.m.Accessors, a)
	return len(b.m.Accessors) - 1
}

// AddPositions packs positions as little-endian float32 VEC3 data into a new
// buffer and returns the index of the accessor describing it. The accessor's
// min/max hold the bounding box of positions.
func (b *Builder) AddPositions(positions []gmath.Vec3) int {
	data := make([]byte, 0, len(positions)*12)
	for _, p := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(p.X))
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(p.Y))
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(p.Z))
	}

	buf := b.AddBuffer(data)
	view := b.AddBufferView(buf, 0, len(data), TargetArray)

	acc := Accessor{
		BufferView:    view,
		ComponentType: ComponentFloat,
		Count:         len(positions),
		Type:          AccessorVec3,
	}
	if lo, hi, ok := gmath.Bounds(positions); ok {
		acc.Min = lo.Array()
		acc.Max = hi.Array()
	}
	return b.AddAccessor(acc)
}

// AddIndices packs indices as little-endian uint16 SCALAR data into a new
// buffer and returns the index of the accessor describing it.
func (b *Builder) AddIndices(indices []uint16) int {
	data := make([]byte, 0, len(indices)*2)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	buf := b.AddBuffer(data)
	view := b.AddBufferView(buf, 0, len(data), TargetElementArray)

	acc := Accessor{
		BufferView:    view,
		ComponentType: ComponentUnsignedShort,
		Count:         len(indices),
		Type:          AccessorScalar,
	}
	if len(indices) > 0 {
		acc.Min = []float64{float64(slices.Min(indices))}
		acc.Max = []float64{float64(slices.Max(indices))}
	}
	return b.AddAccessor(acc)
}
