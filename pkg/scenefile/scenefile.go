// Package scenefile loads glTF models from YAML scene descriptions.
//
// A scene description mirrors the glTF document layout, with enum values
// written by name and buffers given inline or read from raw files:
//
//	scene: 0
//	scenes:
//	  - name: main
//	    nodes: [0]
//	nodes:
//	  - mesh: 0
//	buffers:
//	  - float32: [0, 0, 0, 1, 0, 0, 0, 1, 0]
//	  - file: indices.bin
//	bufferViews:
//	  - {buffer: 0, byteLength: 36, target: ARRAY_BUFFER}
//	accessors:
//	  - {bufferView: 0, componentType: FLOAT, count: 3, type: VEC3}
package scenefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gltfw/pkg/gltf"
)

// Scene file errors.
var (
	ErrAmbiguousBufferSource = errors.New("buffer has more than one data source")
	ErrUnknownEnum           = errors.New("unknown enum value")
	ErrMissingField          = errors.New("missing required field")
	ErrByteRange             = errors.New("byte value out of range")
)

// File is the YAML form of a scene description.
type File struct {
	Scene       *int              `yaml:"scene"`
	Asset       AssetEntry        `yaml:"asset"`
	Scenes      []SceneEntry      `yaml:"scenes"`
	Nodes       []NodeEntry       `yaml:"nodes"`
	Meshes      []MeshEntry       `yaml:"meshes"`
	Buffers     []BufferEntry     `yaml:"buffers"`
	BufferViews []BufferViewEntry `yaml:"bufferViews"`
	Accessors   []AccessorEntry   `yaml:"accessors"`
}

// AssetEntry describes document metadata.
type AssetEntry struct {
	Generator *string `yaml:"generator"`
	Copyright *string `yaml:"copyright"`
}

// SceneEntry describes a scene.
type SceneEntry struct {
	Name  string `yaml:"name"`
	Nodes []int  `yaml:"nodes"`
}

// NodeEntry describes a node.
type NodeEntry struct {
	Mesh int `yaml:"mesh"`
}

// MeshEntry describes a mesh.
type MeshEntry struct {
	Primitives []PrimitiveEntry `yaml:"primitives"`
}

// PrimitiveEntry describes a mesh primitive.
type PrimitiveEntry struct {
	Attributes map[string]int `yaml:"attributes"`
	Material   int            `yaml:"material"`
	Indices    int            `yaml:"indices"`
}

// BufferEntry describes a buffer. At most one source may be set; a buffer
// without a source is empty.
type BufferEntry struct {
	Bytes   []int     `yaml:"bytes"`   // Raw byte values
	File    string    `yaml:"file"`    // Raw file, relative to the scene file
	Float32 []float32 `yaml:"float32"` // Packed little-endian
	Uint16  []uint16  `yaml:"uint16"`  // Packed little-endian
}

// BufferViewEntry describes a buffer view.
type BufferViewEntry struct {
	Buffer     int          `yaml:"buffer"`
	ByteOffset int          `yaml:"byteOffset"`
	ByteLength int          `yaml:"byteLength"`
	Target     BufferTarget `yaml:"target"`
}

// AccessorEntry describes an accessor.
type AccessorEntry struct {
	BufferView    int           `yaml:"bufferView"`
	ByteOffset    int           `yaml:"byteOffset"`
	ComponentType ComponentType `yaml:"componentType"`
	Count         int           `yaml:"count"`
	Type          AccessorType  `yaml:"type"`
	Min           []float64     `yaml:"min"`
	Max           []float64     `yaml:"max"`
}

// Load reads the scene description at path.
func Load(path string) (*gltf.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse builds a model from YAML. Buffer files are resolved against dir.
func Parse(data []byte, dir string) (*gltf.Model, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return f.Build(dir)
}

// Build converts the description into a model.
func (f *File) Build(dir string) (*gltf.Model, error) {
	b := gltf.NewBuilder()

	if f.Asset.Generator != nil {
		b.SetGenerator(*f.Asset.Generator)
	}
	if f.Asset.Copyright != nil {
		b.SetCopyright(*f.Asset.Copyright)
	}
	if f.Scene != nil {
		b.SetDefaultScene(*f.Scene)
	}

	for _, s := range f.Scenes {
		b.AddScene(s.Name, s.Nodes...)
	}
	for _, n := range f.Nodes {
		b.AddNode(n.Mesh)
	}
	for _, mesh := range f.Meshes {
		prims := make([]gltf.Primitive, 0, len(mesh.Primitives))
		for _, p := range mesh.Primitives {
			prims = append(prims, gltf.Primitive{
				Attributes: p.Attributes,
				Material:   p.Material,
				Indices:    p.Indices,
			})
		}
		b.AddMesh(prims...)
	}

	for i, entry := range f.Buffers {
		data, err := entry.load(dir)
		if err != nil {
			return nil, fmt.Errorf("buffers[%d]: %w", i, err)
		}
		b.AddBuffer(data)
	}

	for i, v := range f.BufferViews {
		if !v.Target.set {
			return nil, fmt.Errorf("%w: bufferViews[%d].target", ErrMissingField, i)
		}
		b.AddBufferView(v.Buffer, v.ByteOffset, v.ByteLength, v.Target.value)
	}

	for i, a := range f.Accessors {
		if !a.ComponentType.set {
			return nil, fmt.Errorf("%w: accessors[%d].componentType", ErrMissingField, i)
		}
		if !a.Type.set {
			return nil, fmt.Errorf("%w: accessors[%d].type", ErrMissingField, i)
		}
		b.AddAccessor(gltf.Accessor{
			BufferView:    a.BufferView,
			ByteOffset:    a.ByteOffset,
			ComponentType: a.ComponentType.value,
			Count:         a.Count,
			Type:          a.Type.value,
			Min:           a.Min,
			Max:           a.Max,
		})
	}

	return b.Model(), nil
}

func (e BufferEntry) load(dir string) ([]byte, error) {
	sources := 0
	for _, set := range []bool{e.Bytes != nil, e.File != "", e.Float32 != nil, e.Uint16 != nil} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, ErrAmbiguousBufferSource
	}

	switch {
	case e.Bytes != nil:
		data := make([]byte, len(e.Bytes))
		for i, v := range e.Bytes {
			if v < 0 || v > math.MaxUint8 {
				return nil, fmt.Errorf("%w: bytes[%d] = %d", ErrByteRange, i, v)
			}
			data[i] = byte(v)
		}
		return data, nil
	case e.File != "":
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading buffer file: %w", err)
		}
		return data, nil
	case e.Float32 != nil:
		data := make([]byte, 0, len(e.Float32)*4)
		for _, v := range e.Float32 {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
		}
		return data, nil
	case e.Uint16 != nil:
		data := make([]byte, 0, len(e.Uint16)*2)
		for _, v := range e.Uint16 {
			data = binary.LittleEndian.AppendUint16(data, v)
		}
		return data, nil
	}
	return []byte{}, nil
}

// ApplyDefaults fills in asset metadata the description left out.
// Empty defaults are ignored.
func ApplyDefaults(m *gltf.Model, generator, copyright string) {
	if m.Asset.Generator == nil && generator != "" {
		m.Asset.Generator = gltf.Ptr(generator)
	}
	if m.Asset.Copyright == nil && copyright != "" {
		m.Asset.Copyright = gltf.Ptr(copyright)
	}
}
