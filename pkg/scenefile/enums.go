package scenefile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gltfw/pkg/gltf"
)

// BufferTarget is a buffer view target written by name or code.
type BufferTarget struct {
	value gltf.BufferTarget
	set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *BufferTarget) UnmarshalYAML(n *yaml.Node) error {
	v, err := gltf.ParseBufferTarget(n.Value)
	if err != nil {
		return enumError(n, err)
	}
	*t = BufferTarget{value: v, set: true}
	return nil
}

// ComponentType is an accessor component type written by name or code.
type ComponentType struct {
	value gltf.ComponentType
	set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ComponentType) UnmarshalYAML(n *yaml.Node) error {
	v, err := gltf.ParseComponentType(n.Value)
	if err != nil {
		return enumError(n, err)
	}
	*c = ComponentType{value: v, set: true}
	return nil
}

// AccessorType is an accessor type token.
type AccessorType struct {
	value gltf.AccessorType
	set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AccessorType) UnmarshalYAML(n *yaml.Node) error {
	v, err := gltf.ParseAccessorType(n.Value)
	if err != nil {
		return enumError(n, err)
	}
	*a = AccessorType{value: v, set: true}
	return nil
}

func enumError(n *yaml.Node, err error) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a scalar", ErrUnknownEnum, n.Line)
	}
	return fmt.Errorf("%w: line %d: %w", ErrUnknownEnum, n.Line, err)
}
