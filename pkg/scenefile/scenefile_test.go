package scenefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/Faultbox/gltfw/pkg/gltf"
)

const testScene = `
scene: 1
asset:
  generator: test-writer
  copyright: test-copyright
scenes:
  - name: test-scene1
    nodes: [0]
nodes:
  - mesh: 0
`

func TestParse_TestScene(t *testing.T) {
	m, err := Parse([]byte(testScene), ".")
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.IsNotNil(m.DefaultScene))
	qt.Check(t, qt.Equals(*m.DefaultScene, 1))
	qt.Check(t, qt.Equals(*m.Asset.Generator, "test-writer"))
	qt.Check(t, qt.Equals(*m.Asset.Copyright, "test-copyright"))
	qt.Check(t, qt.DeepEquals(m.Scenes, []gltf.Scene{{Name: "test-scene1", Nodes: []int{0}}}))
	qt.Check(t, qt.DeepEquals(m.Nodes, []gltf.Node{{Mesh: 0}}))
	qt.Check(t, qt.HasLen(m.Meshes, 0))

	data, err := gltf.Marshal(m)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.StringContains(string(data), `"scenes":[{"name":"test-scene1","nodes":[0]}]`))
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse(nil, ".")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.IsNil(m.DefaultScene))
	qt.Check(t, qt.IsNil(m.Asset.Generator))
}

func TestParse_Geometry(t *testing.T) {
	src := `
meshes:
  - primitives:
      - attributes: {POSITION: 0}
        material: 0
        indices: 1
buffers:
  - float32: [0, 0, 0, 1, 0, 0, 0, 1, 0]
  - uint16: [0, 1, 2]
  - bytes: [0, 1, 2, 3]
bufferViews:
  - {buffer: 0, byteLength: 36, target: ARRAY_BUFFER}
  - {buffer: 1, byteLength: 6, target: element_array}
accessors:
  - bufferView: 0
    componentType: FLOAT
    count: 3
    type: VEC3
    min: [0, 0, 0]
    max: [1, 1, 0]
  - bufferView: 1
    componentType: 5123
    count: 3
    type: scalar
`
	m, err := Parse([]byte(src), ".")
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.HasLen(m.Buffers, 3))
	qt.Check(t, qt.HasLen(m.Buffers[0].Data, 36))
	qt.Check(t, qt.DeepEquals(m.Buffers[1].Data, []byte{0, 0, 1, 0, 2, 0}))
	qt.Check(t, qt.DeepEquals(m.Buffers[2].Data, []byte{0, 1, 2, 3}))

	qt.Check(t, qt.Equals(m.BufferViews[0].Target, gltf.TargetArray))
	qt.Check(t, qt.Equals(m.BufferViews[1].Target, gltf.TargetElementArray))

	qt.Check(t, qt.DeepEquals(m.Accessors[0], gltf.Accessor{
		ComponentType: gltf.ComponentFloat,
		Count:         3,
		Type:          gltf.AccessorVec3,
		Min:           []float64{0, 0, 0},
		Max:           []float64{1, 1, 0},
	}))
	qt.Check(t, qt.Equals(m.Accessors[1].ComponentType, gltf.ComponentUnsignedShort))
	qt.Check(t, qt.Equals(m.Accessors[1].Type, gltf.AccessorScalar))

	qt.Check(t, qt.DeepEquals(m.Meshes[0].Primitives[0], gltf.Primitive{
		Attributes: map[string]int{"POSITION": 0},
		Indices:    1,
	}))

	data, err := gltf.Marshal(m)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.StringContains(string(data), `"uri":"`+gltf.DataURIPrefix+`AAECAw=="`))
}

func TestLoad_BufferFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "raw.bin"), []byte{9, 8, 7}, 0644)
	qt.Assert(t, qt.IsNil(err))
	err = os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte("buffers:\n  - file: raw.bin\n  - {}\n"), 0644)
	qt.Assert(t, qt.IsNil(err))

	m, err := Load(filepath.Join(dir, "scene.yaml"))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.DeepEquals(m.Buffers[0].Data, []byte{9, 8, 7}))
	qt.Check(t, qt.HasLen(m.Buffers[1].Data, 0))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "two buffer sources",
			src:     "buffers:\n  - {bytes: [1], uint16: [2]}\n",
			wantErr: ErrAmbiguousBufferSource,
		},
		{
			name:    "byte out of range",
			src:     "buffers:\n  - bytes: [1, 256]\n",
			wantErr: ErrByteRange,
		},
		{
			name:    "unknown component type",
			src:     "accessors:\n  - {componentType: HALF, type: VEC3}\n",
			wantErr: ErrUnknownEnum,
		},
		{
			name:    "unknown accessor type wraps gltf error",
			src:     "accessors:\n  - {componentType: FLOAT, type: VEC5}\n",
			wantErr: gltf.ErrInvalidAccessorType,
		},
		{
			name:    "unknown target",
			src:     "bufferViews:\n  - {buffer: 0, target: UNIFORM}\n",
			wantErr: ErrUnknownEnum,
		},
		{
			name:    "missing target",
			src:     "bufferViews:\n  - {buffer: 0}\n",
			wantErr: ErrMissingField,
		},
		{
			name:    "missing accessor type",
			src:     "accessors:\n  - {componentType: FLOAT}\n",
			wantErr: ErrMissingField,
		},
		{
			name:    "missing buffer file",
			src:     "buffers:\n  - file: nope.bin\n",
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(tt.src), 0644)))

			_, err := Load(path)
			qt.Assert(t, qt.ErrorIs(err, tt.wantErr))
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Parse([]byte("scenes:\n  - name: a\n    children: [1]\n"), ".")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	qt.Assert(t, qt.ErrorIs(err, os.ErrNotExist))
}

func TestApplyDefaults(t *testing.T) {
	m := &gltf.Model{Asset: gltf.Asset{Copyright: gltf.Ptr("mine")}}
	ApplyDefaults(m, "gltftool", "theirs")

	qt.Check(t, qt.Equals(*m.Asset.Generator, "gltftool"))
	qt.Check(t, qt.Equals(*m.Asset.Copyright, "mine"))

	empty := &gltf.Model{}
	ApplyDefaults(empty, "", "")
	qt.Check(t, qt.IsNil(empty.Asset.Generator))
	qt.Check(t, qt.IsNil(empty.Asset.Copyright))
}
