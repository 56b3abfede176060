// Package resolver corrects drag targets so the dragged item stays
// inside the container's usable volume and clear of every other item's
// bounding box. Corrections are single-axis and minimal: the item
// slides along the axis of least penetration until no overlap remains.
package resolver

import (
	"github.com/guttosm/loadsim-service/internal/geometry"
)

// DefaultMaxDepth bounds the correction recursion. Dense packings can
// chain corrections (clearing one obstacle lands on another); fully
// enclosed items would otherwise cycle forever.
const DefaultMaxDepth = 32

// Obstacle is one stationary item the dragged item must not overlap.
type Obstacle struct {
	ItemID string
	Box    geometry.AABB
}

// Request carries everything a single resolution needs. Positions are
// centers in the container frame (origin at the center of the usable
// load volume), in model units.
type Request struct {
	// ItemID identifies the dragged item so it is skipped in the
	// obstacle scan when callers pass the full flattened list.
	ItemID string
	// Dims are the dragged item's rotated extents.
	Dims geometry.Vec3
	// Target is the raw, unconstrained drag target center.
	Target geometry.Vec3
	// Origin is the item's last stable center. Corrections along axes
	// the target has not moved from the origin are discarded, and the
	// origin is the fallback when resolution gives up.
	Origin geometry.Vec3
	// Obstacles are all other batch-level items, in flattened scene
	// order. Scan order is the tie-break when several overlap at once.
	Obstacles []Obstacle
	// Bounds are the usable load volume extents, centered at origin.
	Bounds geometry.Vec3
}

// Result is the resolution outcome. When Resolved is false the
// position is the request origin: the item snaps back to where it was.
type Result struct {
	Position geometry.Vec3
	Resolved bool
	// Depth is the number of corrections applied, for observability.
	Depth int
}

// Resolver resolves drag targets against a recursion ceiling. The zero
// value is not usable; construct with New.
type Resolver struct {
	maxDepth int
}

// New returns a Resolver with the given recursion ceiling. Non-positive
// ceilings fall back to DefaultMaxDepth.
func New(maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{maxDepth: maxDepth}
}

// Resolve clamps the target into the container bounds and then corrects
// it until the dragged item overlaps nothing. Pure and deterministic:
// the same request always yields the same result.
func (r *Resolver) Resolve(req Request) Result {
	target := geometry.ClampCenterToBounds(req.Target, req.Dims, req.Bounds)
	pos, depth, ok := r.resolve(req, target, req.Obstacles, 0)
	if !ok {
		return Result{Position: req.Origin, Resolved: false, Depth: depth}
	}
	return Result{Position: pos, Resolved: true, Depth: depth}
}

func (r *Resolver) resolve(req Request, pos geometry.Vec3, obstacles []Obstacle, depth int) (geometry.Vec3, int, bool) {
	if depth > r.maxDepth {
		return pos, depth, false
	}

	candidate := geometry.BoxFromCenter(pos, req.Dims)
	blocker, found := firstOverlap(candidate, obstacles, req.ItemID)
	if !found {
		return pos, depth, true
	}

	axis, corrected, ok := bestCorrection(req, pos, candidate, obstacles[blocker].Box)
	if !ok {
		// Every face correction was invalid. Pretend the obstacle is
		// not there rather than leaving the drag stuck against it.
		reduced := make([]Obstacle, 0, len(obstacles)-1)
		reduced = append(reduced, obstacles[:blocker]...)
		reduced = append(reduced, obstacles[blocker+1:]...)
		return r.resolve(req, pos, reduced, depth+1)
	}

	return r.resolve(req, pos.WithAxis(axis, corrected), obstacles, depth+1)
}

// firstOverlap returns the index of the first obstacle in scan order
// whose box overlaps the candidate on all three axes. Only one obstacle
// is resolved per iteration; list order is the authoritative tie-break.
func firstOverlap(candidate geometry.AABB, obstacles []Obstacle, selfID string) (int, bool) {
	for i, o := range obstacles {
		if o.ItemID == selfID {
			continue
		}
		if candidate.Intersects(o.Box) {
			return i, true
		}
	}
	return 0, false
}

// bestCorrection evaluates the six single-axis face corrections against
// the blocking obstacle and picks the surviving one with the smallest
// magnitude. A correction is discarded when its axis has not moved from
// the origin (so an idle axis never snaps) or when it would push the
// item outside the container on that axis.
func bestCorrection(req Request, pos geometry.Vec3, candidate, blocker geometry.AABB) (axis int, value float64, ok bool) {
	corrections := candidate.FaceCorrections(blocker)
	half := req.Bounds.Half().Sub(req.Dims.Half())

	best := 0.0
	for i := 0; i < 3; i++ {
		moved := pos.Axis(i)-req.Origin.Axis(i) > geometry.Eps ||
			req.Origin.Axis(i)-pos.Axis(i) > geometry.Eps
		if !moved {
			continue
		}
		for _, c := range corrections[i] {
			v := pos.Axis(i) + c
			if v < -half.Axis(i)-geometry.Eps || v > half.Axis(i)+geometry.Eps {
				continue
			}
			m := c
			if m < 0 {
				m = -m
			}
			if !ok || m < best {
				axis, value, best, ok = i, v, m, true
			}
		}
	}
	return axis, value, ok
}
