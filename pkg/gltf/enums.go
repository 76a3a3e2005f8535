package gltf

import (
	"fmt"
	"strconv"
	"strings"
)

// BufferTarget is the intended GPU binding of a buffer view.
type BufferTarget uint8

const (
	TargetArray        BufferTarget = iota // Vertex attributes
	TargetElementArray                     // Vertex indices
)

var bufferTargets = [...]struct {
	name string
	code int
}{
	TargetArray:        {"ARRAY_BUFFER", 34962},
	TargetElementArray: {"ELEMENT_ARRAY_BUFFER", 34963},
}

// Valid reports whether t is a declared target.
func (t BufferTarget) Valid() bool {
	return int(t) < len(bufferTargets)
}

// Code returns the glTF numeric code, or 0 if t is not valid.
func (t BufferTarget) Code() int {
	if !t.Valid() {
		return 0
	}
	return bufferTargets[t].code
}

// String returns the target name.
func (t BufferTarget) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Unknown(%d)", t)
	}
	return bufferTargets[t].name
}

// ComponentType is the scalar type of accessor elements.
type ComponentType uint8

const (
	ComponentByte ComponentType = iota
	ComponentUnsignedByte
	ComponentShort
	ComponentUnsignedShort
	ComponentInt
	ComponentUnsignedInt
	ComponentFloat
	ComponentDouble
)

var componentTypes = [...]struct {
	name string
	code int
	size int
}{
	ComponentByte:          {"BYTE", 5120, 1},
	ComponentUnsignedByte:  {"UNSIGNED_BYTE", 5121, 1},
	ComponentShort:         {"SHORT", 5122, 2},
	ComponentUnsignedShort: {"UNSIGNED_SHORT", 5123, 2},
	ComponentInt:           {"INT", 5124, 4},
	ComponentUnsignedInt:   {"UNSIGNED_INT", 5125, 4},
	ComponentFloat:         {"FLOAT", 5126, 4},
	ComponentDouble:        {"DOUBLE", 5130, 8},
}

// Valid reports whether c is a declared component type.
func (c ComponentType) Valid() bool {
	return int(c) < len(componentTypes)
}

// Code returns the glTF numeric code, or 0 if c is not valid.
func (c ComponentType) Code() int {
	if !c.Valid() {
		return 0
	}
	return componentTypes[c].code
}

// Size returns the size of one component in bytes.
func (c ComponentType) Size() int {
	if !c.Valid() {
		return 0
	}
	return componentTypes[c].size
}

// String returns the component type name.
func (c ComponentType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Unknown(%d)", c)
	}
	return componentTypes[c].name
}

// AccessorType is the shape of accessor elements.
//
// The token table is indexed by ordinal. VECTOR and MATRIX are not part of
// the core glTF type set but are kept so existing producers round-trip.
type AccessorType uint8

const (
	AccessorVec2 AccessorType = iota
	AccessorVec3
	AccessorVec4
	AccessorMat2
	AccessorMat3
	AccessorMat4
	AccessorScalar
	AccessorVector
	AccessorMatrix
)

var accessorTypes = [...]struct {
	token      string
	components int
}{
	AccessorVec2:   {"VEC2", 2},
	AccessorVec3:   {"VEC3", 3},
	AccessorVec4:   {"VEC4", 4},
	AccessorMat2:   {"MAT2", 4},
	AccessorMat3:   {"MAT3", 9},
	AccessorMat4:   {"MAT4", 16},
	AccessorScalar: {"SCALAR", 1},
	AccessorVector: {"VECTOR", 0},
	AccessorMatrix: {"MATRIX", 0},
}

// Valid reports whether a is a declared accessor type.
func (a AccessorType) Valid() bool {
	return int(a) < len(accessorTypes)
}

// String returns the glTF type token, e.g. "VEC3".
func (a AccessorType) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Unknown(%d)", a)
	}
	return accessorTypes[a].token
}

// Components returns the number of components per element.
// It is 0 for VECTOR and MATRIX, whose width is not fixed.
func (a AccessorType) Components() int {
	if !a.Valid() {
		return 0
	}
	return accessorTypes[a].components
}

// ParseBufferTarget parses a target name ("ARRAY_BUFFER", "array") or code ("34962").
func ParseBufferTarget(s string) (BufferTarget, error) {
	key := normalizeToken(s)
	for i, t := range bufferTargets {
		if key == t.name || key+"_BUFFER" == t.name || matchCode(s, t.code) {
			return BufferTarget(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBufferTarget, s)
}

// ParseComponentType parses a component type name ("FLOAT", "unsigned_short") or code ("5126").
func ParseComponentType(s string) (ComponentType, error) {
	key := normalizeToken(s)
	for i, c := range componentTypes {
		if key == c.name || matchCode(s, c.code) {
			return ComponentType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidComponentType, s)
}

// ParseAccessorType parses an accessor type token ("VEC3", "scalar").
func ParseAccessorType(s string) (AccessorType, error) {
	key := normalizeToken(s)
	for i, a := range accessorTypes {
		if key == a.token {
			return AccessorType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAccessorType, s)
}

func normalizeToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToUpper(s)
}

func matchCode(s string, code int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n == code
}
