package gltf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// Encoding errors. They are returned before anything is written to the sink.
var (
	ErrNilModel             = errors.New("nil model")
	ErrInvalidBufferTarget  = errors.New("invalid buffer target")
	ErrInvalidComponentType = errors.New("invalid component type")
	ErrInvalidAccessorType  = errors.New("invalid accessor type")
	ErrNegativeValue        = errors.New("negative index or size")
	ErrNonFiniteValue       = errors.New("non-finite accessor bound")
	ErrInvalidString        = errors.New("string is not valid UTF-8")
)

// Encoder writes Models as glTF JSON documents.
// The zero value produces compact output.
type Encoder struct {
	Prefix string // Line prefix when Indent is set
	Indent string // Indentation per level; empty for compact output
}

// Marshal returns the compact glTF document for m.
func Marshal(m *Model) ([]byte, error) {
	return Encoder{}.Marshal(m)
}

// Write encodes m and writes the document to w.
func Write(w io.Writer, m *Model) error {
	return Encoder{}.Write(w, m)
}

// WriteFile encodes m and replaces the file at path with the document.
func WriteFile(path string, m *Model) error {
	return Encoder{}.WriteFile(path, m)
}

// Marshal returns the glTF document for m.
func (e Encoder) Marshal(m *Model) ([]byte, error) {
	doc, err := project(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if e.Prefix != "" || e.Indent != "" {
		enc.SetIndent(e.Prefix, e.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	// json.Encoder terminates every value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// Write encodes m and hands the complete document to w in a single call.
func (e Encoder) Write(w io.Writer, m *Model) error {
	data, err := e.Marshal(m)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// WriteFile encodes m into a temporary file next to path and renames it
// into place, so path never holds a partial document. The new file always
// has mode 0644; the previous file's permissions are not kept, and a
// symlink at path is replaced rather than written through.
func (e Encoder) WriteFile(path string, m *Model) (err error) {
	data, err := e.Marshal(m)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return multierr.Append(fmt.Errorf("writing %s: %w", path, err), tmp.Close())
	}
	if err := tmp.Chmod(0644); err != nil {
		return multierr.Append(fmt.Errorf("writing %s: %w", path, err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Wire representation. Field order is the member order of the output.

type document struct {
	Scene       *int             `json:"scene,omitempty"`
	Scenes      []sceneJSON      `json:"scenes"`
	Nodes       []nodeJSON       `json:"nodes"`
	Meshes      []meshJSON       `json:"meshes"`
	Buffers     []bufferJSON     `json:"buffers"`
	BufferViews []bufferViewJSON `json:"bufferViews"`
	Accessors   []accessorJSON   `json:"accessors"`
	Asset       assetJSON        `json:"asset"`
}

type sceneJSON struct {
	Name  string `json:"name"`
	Nodes []int  `json:"nodes"`
}

type nodeJSON struct {
	Mesh int `json:"mesh"`
}

type meshJSON struct {
	Primitives []primitiveJSON `json:"primitives"`
}

type primitiveJSON struct {
	Material   int            `json:"material"`
	Indices    int            `json:"indices"`
	Attributes map[string]int `json:"attributes,omitempty"`
}

type bufferJSON struct {
	ByteLength int     `json:"byteLength"`
	URI        dataURI `json:"uri"`
}

type bufferViewJSON struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target"`
}

type accessorJSON struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float64 `json:"max"`
	Min           []float64 `json:"min"`
}

type assetJSON struct {
	Version   string  `json:"version"`
	Generator *string `json:"generator,omitempty"`
	Copyright *string `json:"copyright,omitempty"`
}

// project maps the model onto its wire representation, rejecting values
// that have no glTF encoding. Slices are always non-nil so empty lists
// are written as [] rather than null.
func project(m *Model) (*document, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	doc := &document{
		Scenes:      make([]sceneJSON, 0, len(m.Scenes)),
		Nodes:       make([]nodeJSON, 0, len(m.Nodes)),
		Meshes:      make([]meshJSON, 0, len(m.Meshes)),
		Buffers:     make([]bufferJSON, 0, len(m.Buffers)),
		BufferViews: make([]bufferViewJSON, 0, len(m.BufferViews)),
		Accessors:   make([]accessorJSON, 0, len(m.Accessors)),
		Asset: assetJSON{
			Version:   Version,
			Generator: m.Asset.Generator,
			Copyright: m.Asset.Copyright,
		},
	}

	if err := checkString("asset.generator", m.Asset.Generator); err != nil {
		return nil, err
	}
	if err := checkString("asset.copyright", m.Asset.Copyright); err != nil {
		return nil, err
	}

	if m.DefaultScene != nil {
		if *m.DefaultScene < 0 {
			return nil, fmt.Errorf("%w: scene: %d", ErrNegativeValue, *m.DefaultScene)
		}
		doc.Scene = m.DefaultScene
	}

	for i, s := range m.Scenes {
		if !utf8.ValidString(s.Name) {
			return nil, fmt.Errorf("%w: scenes[%d].name: %q", ErrInvalidString, i, s.Name)
		}
		for j, n := range s.Nodes {
			if n < 0 {
				return nil, fmt.Errorf("%w: scenes[%d].nodes[%d]: %d", ErrNegativeValue, i, j, n)
			}
		}
		doc.Scenes = append(doc.Scenes, sceneJSON{
			Name:  s.Name,
			Nodes: append(make([]int, 0, len(s.Nodes)), s.Nodes...),
		})
	}

	for i, n := range m.Nodes {
		if n.Mesh < 0 {
			return nil, fmt.Errorf("%w: nodes[%d].mesh: %d", ErrNegativeValue, i, n.Mesh)
		}
		doc.Nodes = append(doc.Nodes, nodeJSON{Mesh: n.Mesh})
	}

	for i, mesh := range m.Meshes {
		prims := make([]primitiveJSON, 0, len(mesh.Primitives))
		for j, p := range mesh.Primitives {
			pj, err := projectPrimitive(p)
			if err != nil {
				return nil, fmt.Errorf("meshes[%d].primitives[%d]: %w", i, j, err)
			}
			prims = append(prims, pj)
		}
		doc.Meshes = append(doc.Meshes, meshJSON{Primitives: prims})
	}

	for _, b := range m.Buffers {
		doc.Buffers = append(doc.Buffers, bufferJSON{
			ByteLength: len(b.Data),
			URI:        dataURI(b.Data),
		})
	}

	for i, bv := range m.BufferViews {
		if !bv.Target.Valid() {
			return nil, fmt.Errorf("%w: bufferViews[%d]: %d", ErrInvalidBufferTarget, i, bv.Target)
		}
		if bv.Buffer < 0 || bv.ByteOffset < 0 || bv.ByteLength < 0 {
			return nil, fmt.Errorf("%w: bufferViews[%d]", ErrNegativeValue, i)
		}
		doc.BufferViews = append(doc.BufferViews, bufferViewJSON{
			Buffer:     bv.Buffer,
			ByteOffset: bv.ByteOffset,
			ByteLength: bv.ByteLength,
			Target:     bv.Target.Code(),
		})
	}

	for i, a := range m.Accessors {
		aj, err := projectAccessor(a)
		if err != nil {
			return nil, fmt.Errorf("accessors[%d]: %w", i, err)
		}
		doc.Accessors = append(doc.Accessors, aj)
	}

	return doc, nil
}

func projectPrimitive(p Primitive) (primitiveJSON, error) {
	if p.Material < 0 || p.Indices < 0 {
		return primitiveJSON{}, ErrNegativeValue
	}
	pj := primitiveJSON{Material: p.Material, Indices: p.Indices}
	if len(p.Attributes) == 0 {
		return pj, nil
	}
	pj.Attributes = make(map[string]int, len(p.Attributes))
	for semantic, idx := range p.Attributes {
		if !utf8.ValidString(semantic) {
			return primitiveJSON{}, fmt.Errorf("%w: attribute %q", ErrInvalidString, semantic)
		}
		if idx < 0 {
			return primitiveJSON{}, fmt.Errorf("%w: attribute %s", ErrNegativeValue, semantic)
		}
		pj.Attributes[semantic] = idx
	}
	return pj, nil
}

func checkString(field string, s *string) error {
	if s != nil && !utf8.ValidString(*s) {
		return fmt.Errorf("%w: %s: %q", ErrInvalidString, field, *s)
	}
	return nil
}

func projectAccessor(a Accessor) (accessorJSON, error) {
	if !a.ComponentType.Valid() {
		return accessorJSON{}, fmt.Errorf("%w: %d", ErrInvalidComponentType, a.ComponentType)
	}
	if !a.Type.Valid() {
		return accessorJSON{}, fmt.Errorf("%w: %d", ErrInvalidAccessorType, a.Type)
	}
	if a.BufferView < 0 || a.ByteOffset < 0 || a.Count < 0 {
		return accessorJSON{}, ErrNegativeValue
	}
	hi, err := finiteCopy(a.Max)
	if err != nil {
		return accessorJSON{}, fmt.Errorf("max: %w", err)
	}
	lo, err := finiteCopy(a.Min)
	if err != nil {
		return accessorJSON{}, fmt.Errorf("min: %w", err)
	}
	return accessorJSON{
		BufferView:    a.BufferView,
		ByteOffset:    a.ByteOffset,
		ComponentType: a.ComponentType.Code(),
		Count:         a.Count,
		Type:          a.Type.String(),
		Max:           hi,
		Min:           lo,
	}, nil
}

func finiteCopy(values []float64) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %v", ErrNonFiniteValue, v)
		}
		out = append(out, v)
	}
	return out, nil
}
