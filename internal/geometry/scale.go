package geometry

// Scale is the per-batch render normalization factor. Dividing every
// dimension by it maps the largest batch dimension to roughly one render
// unit, which keeps the camera grid and drag-gizmo sizing consistent
// across real-world sizes from shoe boxes to shipping containers.
type Scale float64

// NewScale picks the render scale for a batch: the maximum over the
// batch's own extents and its usable load extents. A non-positive result
// degenerates to 1 so conversions stay well-defined.
func NewScale(own, load Vec3) Scale {
	max := own.X
	for _, v := range []float64{own.Y, own.Z, load.X, load.Y, load.Z} {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return Scale(max)
}

// ToRender converts a model-space value to render units.
func (s Scale) ToRender(v float64) float64 {
	return v / float64(s)
}

// FromRender converts a render-space value back to model units.
// Exact inverse of ToRender up to floating-point tolerance.
func (s Scale) FromRender(v float64) float64 {
	return v * float64(s)
}

// ToRenderVec converts every component of v to render units.
func (s Scale) ToRenderVec(v Vec3) Vec3 {
	return Vec3{X: s.ToRender(v.X), Y: s.ToRender(v.Y), Z: s.ToRender(v.Z)}
}

// FromRenderVec converts every component of v back to model units.
func (s Scale) FromRenderVec(v Vec3) Vec3 {
	return Vec3{X: s.FromRender(v.X), Y: s.FromRender(v.Y), Z: s.FromRender(v.Z)}
}

// CenterFromCorner converts a stored position (box corner aligned to the
// container corner) into the box's geometric center relative to the
// container center. dims are the box's rotated extents, container the
// usable volume the position is stored against.
func CenterFromCorner(pos, dims, container Vec3) Vec3 {
	return pos.Add(dims.Half()).Sub(container.Half())
}

// CornerFromCenter is the exact inverse of CenterFromCorner.
func CornerFromCenter(center, dims, container Vec3) Vec3 {
	return center.Sub(dims.Half()).Add(container.Half())
}
