// Package gltf writes glTF 2.0 scene documents with embedded buffers.
//
// A Model is plain data built by the caller. The encoder only reads it and
// never checks cross references (node to mesh, accessor to buffer view, ...);
// those are the producer's responsibility.
package gltf

// Version is the glTF format version written to every document.
const Version = "2.0"

// Asset holds document metadata.
type Asset struct {
	Generator *string // Tool that produced the document (optional)
	Copyright *string // Copyright notice (optional)
}

// Scene groups root nodes.
type Scene struct {
	Name  string
	Nodes []int // Indices into Model.Nodes
}

// Node is a scene graph entry referencing a single mesh.
type Node struct {
	Mesh int // Index into Model.Meshes
}

// Primitive is one drawable unit of a mesh.
type Primitive struct {
	Attributes map[string]int // Semantic (POSITION, NORMAL, ...) -> accessor index
	Material   int            // Material index
	Indices    int            // Accessor index of the index data
}

// Mesh is a renderable object made of primitives.
type Mesh struct {
	Primitives []Primitive
}

// Buffer is a raw binary blob. Its byte length is len(Data).
type Buffer struct {
	Data []byte
}

// BufferView is a byte range of a buffer.
type BufferView struct {
	Buffer     int // Index into Model.Buffers
	ByteOffset int
	ByteLength int
	Target     BufferTarget
}

// Accessor is a typed view over a buffer view.
type Accessor struct {
	BufferView    int // Index into Model.BufferViews
	ByteOffset    int
	ComponentType ComponentType
	Count         int // Number of elements
	Type          AccessorType
	Min           []float64 // Written verbatim, even when empty
	Max           []float64 // Written verbatim, even when empty
}

// Model is a complete exportable scene.
type Model struct {
	Asset        Asset
	DefaultScene *int // Index into Scenes; nil omits the member
	Scenes       []Scene
	Nodes        []Node
	Meshes       []Mesh
	Buffers      []Buffer
	BufferViews  []BufferView
	Accessors    []Accessor
}

// Ptr returns a pointer to v, for optional fields.
func Ptr[T any](v T) *T {
	return &v
}
