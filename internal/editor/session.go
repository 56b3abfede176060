// Package editor holds the per-batch editing session: single-item
// selection, the edit-mode gate, rotation commands, and the drag
// lifecycle. All mutations go through immutable tree patches; the
// session only swaps which tree is current.
package editor

import (
	"errors"
	"sync"

	"github.com/guttosm/loadsim-service/internal/domain/model"
	"github.com/guttosm/loadsim-service/internal/geometry"
	"github.com/guttosm/loadsim-service/internal/resolver"
	"github.com/guttosm/loadsim-service/internal/scene"
)

// Session errors returned to the transport layer.
var (
	// ErrItemNotFound means the id matches no batch-level item.
	ErrItemNotFound = errors.New("editor: item not found in batch")
	// ErrNotSelected means the operation targets an item that is not
	// the current selection.
	ErrNotSelected = errors.New("editor: item is not selected")
	// ErrEditModeOff means edit mode is disabled for the session.
	ErrEditModeOff = errors.New("editor: edit mode is off")
	// ErrVerticalRotation means a sub-pallet was asked to flip
	// vertically; its vertical orientation is fixed by how it sits.
	ErrVerticalRotation = errors.New("editor: sub-pallets cannot rotate vertically")
	// ErrNoDrag means a drag-move or drag-end arrived without a
	// preceding drag-begin.
	ErrNoDrag = errors.New("editor: no drag in progress")
)

// RotationDirection selects which fixed rotation cycle to apply.
type RotationDirection string

const (
	// RotateHorizontal is the 90° yaw flip (codes 0↔1, 2↔3, 4↔5).
	RotateHorizontal RotationDirection = "horizontal"
	// RotateVertical is the 90° pitch flip (codes 0↔4, 1↔3, 2↔5).
	RotateVertical RotationDirection = "vertical"
)

// Valid reports whether d is a known direction.
func (d RotationDirection) Valid() bool {
	return d == RotateHorizontal || d == RotateVertical
}

// Session owns one batch tree for the duration of an editing session.
// Input events arrive serialized per browser tab but concurrent tabs
// can share a session, so every operation takes the mutex and reads
// the current tree rather than a captured snapshot; a rotation landing
// mid-drag is picked up by the next drag-move instead of being lost.
type Session struct {
	mu       sync.Mutex
	batch    *model.Batch
	res      *resolver.Resolver
	selected string
	editMode bool
	drag     *dragState
}

// dragState pins the dragged item's last stable center for the
// unmoved-axis filter and the snap-back fallback.
type dragState struct {
	itemID string
	origin geometry.Vec3
}

// NewSession starts a session over the given batch tree.
func NewSession(batch *model.Batch, res *resolver.Resolver) *Session {
	return &Session{batch: batch, res: res}
}

// Batch returns the current tree snapshot.
func (s *Session) Batch() *model.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch
}

// Scene returns the flattened render nodes of the current tree.
func (s *Session) Scene() []scene.Node {
	return scene.Flatten(s.Batch())
}

// Selected returns the selected item id and whether one is selected.
func (s *Session) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected != ""
}

// EditMode reports whether edit controls are enabled.
func (s *Session) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

// SetEditMode toggles the edit-mode gate. Selection persists across
// toggles; an in-flight drag is cancelled when edit mode goes off.
func (s *Session) SetEditMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = on
	if !on {
		s.drag = nil
	}
}

// Select moves the selection to the given item, or clears it when the
// id is empty (a click on empty space). Selecting a different item
// while one is selected just moves the selection; there is no
// multi-select. Unknown ids fail without changing the selection.
func (s *Session) Select(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if itemID == "" {
		s.selected = ""
		s.drag = nil
		return nil
	}
	if _, ok := scene.FindNode(scene.Flatten(s.batch), itemID); !ok {
		return ErrItemNotFound
	}
	if s.selected != itemID {
		s.drag = nil
	}
	s.selected = itemID
	return nil
}

// Rotate applies the fixed rotation cycle to the selected item and
// returns the patched tree. It does not re-run collision resolution: a
// rotated item may overlap until the next drag. The session keeps
// serving the pre-rotation tree until the caller persists the patch
// and installs it with Commit.
func (s *Session) Rotate(itemID string, dir RotationDirection) (*model.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, err := s.checkEditTarget(itemID)
	if err != nil {
		return nil, err
	}
	if dir == RotateVertical && node.Kind == scene.KindSubPallet {
		return nil, ErrVerticalRotation
	}

	next := node.Rotation.FlipHorizontal()
	if dir == RotateVertical {
		next = node.Rotation.FlipVertical()
	}
	patched, ok := scene.RotateItem(s.batch, itemID, next)
	if !ok {
		return nil, ErrItemNotFound
	}
	s.drag = nil
	return patched, nil
}

// Commit installs a patched tree produced by Rotate or EndDrag as the
// session's current tree. Keeping the swap separate lets the caller
// persist the patch first, so a storage failure never leaves the
// in-memory session ahead of the store.
func (s *Session) Commit(b *model.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = b
}

// BeginDrag starts a drag on the selected item, pinning its current
// center as the stable origin.
func (s *Session) BeginDrag(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, err := s.checkEditTarget(itemID)
	if err != nil {
		return err
	}
	s.drag = &dragState{itemID: itemID, origin: node.Center}
	return nil
}

// DragMove resolves a transient target against the current tree
// without patching it; the caller renders the preview position. The
// tree is re-read on every call so edits interleaved with the drag are
// respected.
func (s *Session) DragMove(itemID string, target geometry.Vec3) (resolver.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil || s.drag.itemID != itemID {
		return resolver.Result{}, ErrNoDrag
	}
	req, err := s.resolveRequest(itemID, target, s.drag.origin)
	if err != nil {
		return resolver.Result{}, err
	}
	return s.res.Resolve(req), nil
}

// EndDrag resolves the final target and returns the tree patched with
// the result; the caller installs it with Commit once persisted. On
// fallback the current tree is returned as-is and the item snaps back
// to its origin; the result reports Resolved false. An explicit
// BeginDrag is not required: a bare drag-end uses the item's current
// center as the origin.
func (s *Session) EndDrag(itemID string, target geometry.Vec3) (*model.Batch, resolver.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, err := s.checkEditTarget(itemID)
	if err != nil {
		return nil, resolver.Result{}, err
	}
	origin := node.Center
	if s.drag != nil && s.drag.itemID == itemID {
		origin = s.drag.origin
	}
	s.drag = nil

	req, err := s.resolveRequest(itemID, target, origin)
	if err != nil {
		return nil, resolver.Result{}, err
	}
	result := s.res.Resolve(req)
	if !result.Resolved {
		return s.batch, result, nil
	}

	pos := geometry.CornerFromCenter(result.Position, node.Dims, s.batch.LoadDims())
	patched, ok := scene.MoveItem(s.batch, itemID, pos)
	if !ok {
		return nil, resolver.Result{}, ErrItemNotFound
	}
	return patched, result, nil
}

// CancelDrag abandons an in-flight drag, leaving the tree untouched.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = nil
}

// checkEditTarget enforces the edit-mode and selection gates and looks
// up the target node in the current tree. Callers hold the mutex.
func (s *Session) checkEditTarget(itemID string) (scene.Node, error) {
	if !s.editMode {
		return scene.Node{}, ErrEditModeOff
	}
	if s.selected != itemID {
		return scene.Node{}, ErrNotSelected
	}
	node, ok := scene.FindNode(scene.Flatten(s.batch), itemID)
	if !ok {
		return scene.Node{}, ErrItemNotFound
	}
	return node, nil
}

// resolveRequest builds the resolver input from the current tree.
// Callers hold the mutex.
func (s *Session) resolveRequest(itemID string, target, origin geometry.Vec3) (resolver.Request, error) {
	nodes := scene.Flatten(s.batch)
	node, ok := scene.FindNode(nodes, itemID)
	if !ok {
		return resolver.Request{}, ErrItemNotFound
	}
	obstacles := make([]resolver.Obstacle, 0, len(nodes)-1)
	for _, n := range nodes {
		if n.ItemID == itemID {
			continue
		}
		obstacles = append(obstacles, resolver.Obstacle{ItemID: n.ItemID, Box: n.AABB()})
	}
	return resolver.Request{
		ItemID:    itemID,
		Dims:      node.Dims,
		Target:    target,
		Origin:    origin,
		Obstacles: obstacles,
		Bounds:    s.batch.LoadDims(),
	}, nil
}
