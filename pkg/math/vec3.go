// Package math provides vector helpers for packing geometry.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Min returns the component-wise minimum of v and other.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of v and other.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// Array returns the components as float64, in X, Y, Z order.
func (v Vec3) Array() []float64 {
	return []float64{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Bounds returns the axis-aligned bounding box of points.
// ok is false when points is empty.
func Bounds(points []Vec3) (lo, hi Vec3, ok bool) {
	if len(points) == 0 {
		return Vec3{}, Vec3{}, false
	}
	lo = Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi = Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, p := range points {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi, true
}
