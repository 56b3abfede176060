package geometry

// AABB is an axis-aligned bounding box given by its min and max corners.
// All overlap tests in the placement editor work on AABBs.
type AABB struct {
	Min Vec3
	Max Vec3
}

// BoxFromCenter builds an AABB from a center point and full extents.
func BoxFromCenter(center, dims Vec3) AABB {
	half := dims.Half()
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Center returns the geometric center of the box.
func (a AABB) Center() Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Dims returns the full extents of the box.
func (a AABB) Dims() Vec3 {
	return a.Max.Sub(a.Min)
}

// Intersects reports whether a and b overlap on all three axes
// simultaneously. Boxes that merely touch (share a face within Eps) do
// not intersect, so flush placements produced by the resolver are stable.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X-Eps && a.Max.X > b.Min.X+Eps &&
		a.Min.Y < b.Max.Y-Eps && a.Max.Y > b.Min.Y+Eps &&
		a.Min.Z < b.Max.Z-Eps && a.Max.Z > b.Min.Z+Eps
}

// FaceCorrections returns, per axis, the signed center displacement that
// would move box a to sit flush against each of the two faces of obstacle
// b along that axis: index [i][0] clears b's min face (a moves toward
// negative i), [i][1] clears b's max face (a moves toward positive i).
// Only meaningful when a and b intersect.
func (a AABB) FaceCorrections(b AABB) [3][2]float64 {
	var out [3][2]float64
	for i := 0; i < 3; i++ {
		out[i][0] = b.Min.Axis(i) - a.Max.Axis(i)
		out[i][1] = b.Max.Axis(i) - a.Min.Axis(i)
	}
	return out
}
