package geometry

// Rotation is one of the six discrete box orientations. Each code aligns
// the box's principal axes with the world axes in a fixed way; reflections
// and the remaining 18 orientations of the full rotation group are not
// representable on purpose.
type Rotation int

// The six orientation codes.
const (
	RotationIdentity  Rotation = 0 // (L, H, W)
	RotationYaw       Rotation = 1 // (W, H, L)
	RotationRoll      Rotation = 2 // (H, L, W)
	RotationYawRoll   Rotation = 3 // (W, L, H)
	RotationPitch     Rotation = 4 // (L, W, H)
	RotationPitchYaw  Rotation = 5 // (H, W, L)
	rotationCodeCount          = 6
)

// Valid reports whether r is one of the six defined codes.
func (r Rotation) Valid() bool {
	return r >= 0 && r < rotationCodeCount
}

// normalize maps out-of-range codes to the identity, mirroring how the
// rendering surface treats unknown rotation values in stored documents.
func (r Rotation) normalize() Rotation {
	if !r.Valid() {
		return RotationIdentity
	}
	return r
}

// rotationPatterns permutes the nominal (length, height, width) triple
// into axis-aligned (dx, dy, dz) extents, indexed by rotation code.
var rotationPatterns = [rotationCodeCount][3]int{
	{0, 1, 2}, // identity
	{2, 1, 0}, // 90° yaw
	{1, 0, 2}, // roll
	{2, 0, 1}, // yaw+roll
	{0, 2, 1}, // pitch
	{1, 2, 0}, // pitch+yaw
}

// orientationPatterns holds the fixed Euler angles (degrees, XYZ order)
// the rendering surface applies per rotation code.
var orientationPatterns = [rotationCodeCount][3]float64{
	{0, 0, 0},
	{0, 90, 0},
	{0, 0, 90},
	{90, 0, 90},
	{90, 0, 0},
	{90, -90, 0},
}

// RotatedDims returns the axis-aligned extents (dx, dy, dz) of a box with
// nominal length l, height h (including any load height), and width w
// under rotation r. Pure and total: unknown codes behave as identity.
func RotatedDims(l, h, w float64, r Rotation) Vec3 {
	nominal := [3]float64{l, h, w}
	p := rotationPatterns[r.normalize()]
	return Vec3{X: nominal[p[0]], Y: nominal[p[1]], Z: nominal[p[2]]}
}

// Orientation returns the Euler angles in degrees for rotation r.
func Orientation(r Rotation) (rx, ry, rz float64) {
	p := orientationPatterns[r.normalize()]
	return p[0], p[1], p[2]
}

// FlipHorizontal returns the rotation after a 90° yaw flip. The codes
// pair up as 0↔1, 2↔3, 4↔5.
func (r Rotation) FlipHorizontal() Rotation {
	switch r.normalize() {
	case RotationIdentity:
		return RotationYaw
	case RotationYaw:
		return RotationIdentity
	case RotationRoll:
		return RotationYawRoll
	case RotationYawRoll:
		return RotationRoll
	case RotationPitch:
		return RotationPitchYaw
	default:
		return RotationPitch
	}
}

// FlipVertical returns the rotation after a 90° pitch flip. The codes
// pair up as 0↔4, 1↔3, 2↔5. Only leaf boxes may flip vertically; the
// editor enforces that restriction.
func (r Rotation) FlipVertical() Rotation {
	switch r.normalize() {
	case RotationIdentity:
		return RotationPitch
	case RotationPitch:
		return RotationIdentity
	case RotationYaw:
		return RotationYawRoll
	case RotationYawRoll:
		return RotationYaw
	case RotationRoll:
		return RotationPitchYaw
	default:
		return RotationRoll
	}
}
