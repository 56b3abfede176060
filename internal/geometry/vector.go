// Package geometry provides the pure spatial math shared by the scene
// assembler, the drag resolver, and the rendering surface: vectors,
// axis-aligned bounding boxes, the six-code box rotation model, and the
// render-scale / coordinate-convention conversions.
package geometry

import "math"

// Eps is the tolerance used for all floating-point comparisons in the
// placement model. Matches the epsilon the packing backend uses.
const Eps = 1e-6

// Vec3 is a point or extent in container space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o componentwise.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o componentwise.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Half returns v / 2, the half-extent of a full extent vector.
func (v Vec3) Half() Vec3 {
	return Vec3{X: v.X / 2, Y: v.Y / 2, Z: v.Z / 2}
}

// Axis returns the component for axis i (0=x, 1=y, 2=z).
func (v Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithAxis returns a copy of v with axis i replaced by value.
func (v Vec3) WithAxis(i int, value float64) Vec3 {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// ApproxEqual reports whether v and o are equal within Eps on every axis.
func (v Vec3) ApproxEqual(o Vec3) bool {
	return math.Abs(v.X-o.X) <= Eps &&
		math.Abs(v.Y-o.Y) <= Eps &&
		math.Abs(v.Z-o.Z) <= Eps
}

// Clamp limits each component of v to [min, max] componentwise.
func (v Vec3) Clamp(min, max Vec3) Vec3 {
	return Vec3{
		X: clamp(v.X, min.X, max.X),
		Y: clamp(v.Y, min.Y, max.Y),
		Z: clamp(v.Z, min.Z, max.Z),
	}
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		// Item larger than the usable span on this axis: pin to center.
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampCenterToBounds limits a box center so the box with the given full
// extents stays inside a container of size bounds centered at the origin.
func ClampCenterToBounds(center, dims, bounds Vec3) Vec3 {
	half := bounds.Half().Sub(dims.Half())
	return center.Clamp(half.Scale(-1), half)
}
