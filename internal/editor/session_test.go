package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/loadsim-service/internal/domain/model"
	"github.com/guttosm/loadsim-service/internal/geometry"
	"github.com/guttosm/loadsim-service/internal/resolver"
)

func boxAt(id string, x, y, z float64) model.Box {
	return model.Box{ItemID: id, Name: id, Length: 100, Width: 100, Height: 100, X: x, Y: y, Z: z}
}

// sessionBatch is a 1000-unit cube holding two 100-unit boxes on the
// floor: box-1 in the corner, box-2 at x=500.
func sessionBatch() *model.Batch {
	return &model.Batch{
		BatchID:    1,
		BatchType:  model.BatchTypeContainer,
		Length:     1000,
		Width:      1000,
		Height:     1000,
		LoadLength: 1000,
		LoadWidth:  1000,
		LoadHeight: 1000,
		Details: []model.Detail{
			{Order: &model.Order{Products: []model.Box{
				boxAt("box-1", 0, 0, 0),
				boxAt("box-2", 500, 0, 0),
			}}},
		},
	}
}

func sessionBatchWithSubPallet() *model.Batch {
	b := sessionBatch()
	b.Details = append(b.Details, model.Detail{SubPallet: &model.SubPallet{
		ItemID:     "sub-1",
		MasterType: model.MasterTypeSimBatch,
		Length:     300,
		Width:      300,
		Height:     150,
		LoadLength: 300,
		LoadWidth:  300,
		LoadHeight: 200,
		X:          600,
		Z:          600,
	}})
	return b
}

func newTestSession(b *model.Batch) *Session {
	return NewSession(b, resolver.New(0))
}

func TestSession_Select(t *testing.T) {
	t.Run("selects a known item", func(t *testing.T) {
		s := newTestSession(sessionBatch())

		require.NoError(t, s.Select("box-1"))

		id, ok := s.Selected()
		assert.True(t, ok)
		assert.Equal(t, "box-1", id)
	})

	t.Run("unknown id fails and keeps the selection", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		require.NoError(t, s.Select("box-1"))

		assert.ErrorIs(t, s.Select("ghost"), ErrItemNotFound)

		id, ok := s.Selected()
		assert.True(t, ok)
		assert.Equal(t, "box-1", id)
	})

	t.Run("empty id clears the selection", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		require.NoError(t, s.Select("box-1"))

		require.NoError(t, s.Select(""))

		_, ok := s.Selected()
		assert.False(t, ok)
	})

	t.Run("selecting another item moves the selection", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		require.NoError(t, s.Select("box-1"))

		require.NoError(t, s.Select("box-2"))

		id, _ := s.Selected()
		assert.Equal(t, "box-2", id)
	})
}

func TestSession_Rotate(t *testing.T) {
	t.Run("requires edit mode", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		require.NoError(t, s.Select("box-1"))

		_, err := s.Rotate("box-1", RotateHorizontal)

		assert.ErrorIs(t, err, ErrEditModeOff)
	})

	t.Run("requires the item to be selected", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		_, err := s.Rotate("box-2", RotateHorizontal)

		assert.ErrorIs(t, err, ErrNotSelected)
	})

	t.Run("horizontal flip cycles the yaw pair", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		patched, err := s.Rotate("box-1", RotateHorizontal)

		require.NoError(t, err)
		assert.Equal(t, geometry.RotationYaw, patched.Details[0].Order.Products[0].Rotation)
		// The session serves the old tree until the patch is committed.
		assert.NotSame(t, patched, s.Batch())
		s.Commit(patched)
		assert.Same(t, patched, s.Batch())
	})

	t.Run("vertical flip cycles the pitch pair", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		patched, err := s.Rotate("box-1", RotateVertical)

		require.NoError(t, err)
		assert.Equal(t, geometry.RotationPitch, patched.Details[0].Order.Products[0].Rotation)
	})

	t.Run("flipping twice restores the orientation", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		once, err := s.Rotate("box-1", RotateHorizontal)
		require.NoError(t, err)
		s.Commit(once)
		patched, err := s.Rotate("box-1", RotateHorizontal)
		require.NoError(t, err)

		assert.Equal(t, geometry.RotationIdentity, patched.Details[0].Order.Products[0].Rotation)
	})

	t.Run("sub-pallets cannot rotate vertically", func(t *testing.T) {
		s := newTestSession(sessionBatchWithSubPallet())
		s.SetEditMode(true)
		require.NoError(t, s.Select("sub-1"))

		_, err := s.Rotate("sub-1", RotateVertical)

		assert.ErrorIs(t, err, ErrVerticalRotation)
	})

	t.Run("sub-pallets rotate horizontally", func(t *testing.T) {
		s := newTestSession(sessionBatchWithSubPallet())
		s.SetEditMode(true)
		require.NoError(t, s.Select("sub-1"))

		patched, err := s.Rotate("sub-1", RotateHorizontal)

		require.NoError(t, err)
		assert.Equal(t, geometry.RotationYaw, patched.Details[1].SubPallet.Rotation)
	})
}

func TestSession_DragLifecycle(t *testing.T) {
	t.Run("drag move without drag begin fails", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		_, err := s.DragMove("box-1", geometry.Vec3{X: 0, Y: -450, Z: 0})

		assert.ErrorIs(t, err, ErrNoDrag)
	})

	t.Run("drag move previews without patching the tree", func(t *testing.T) {
		original := sessionBatch()
		s := newTestSession(original)
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))
		require.NoError(t, s.BeginDrag("box-1"))

		res, err := s.DragMove("box-1", geometry.Vec3{X: 0, Y: -450, Z: 0})

		require.NoError(t, err)
		assert.True(t, res.Resolved)
		assert.True(t, res.Position.ApproxEqual(geometry.Vec3{X: 0, Y: -450, Z: 0}))
		// Preview only: the tree still has the box in its corner.
		assert.Same(t, original, s.Batch())
		assert.Equal(t, 0.0, s.Batch().Details[0].Order.Products[0].X)
	})

	t.Run("cancel drag abandons the drag", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))
		require.NoError(t, s.BeginDrag("box-1"))

		s.CancelDrag()

		_, err := s.DragMove("box-1", geometry.Vec3{})
		assert.ErrorIs(t, err, ErrNoDrag)
	})

	t.Run("leaving edit mode cancels the drag", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))
		require.NoError(t, s.BeginDrag("box-1"))

		s.SetEditMode(false)
		s.SetEditMode(true)

		_, err := s.DragMove("box-1", geometry.Vec3{})
		assert.ErrorIs(t, err, ErrNoDrag)
	})

	t.Run("rotation cancels the drag", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))
		require.NoError(t, s.BeginDrag("box-1"))

		_, err := s.Rotate("box-1", RotateHorizontal)
		require.NoError(t, err)

		_, err = s.DragMove("box-1", geometry.Vec3{})
		assert.ErrorIs(t, err, ErrNoDrag)
	})
}

func TestSession_EndDrag(t *testing.T) {
	t.Run("patches the tree with the corner-convention position", func(t *testing.T) {
		// No explicit BeginDrag: the current center is the origin.
		original := sessionBatch()
		s := newTestSession(original)
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		patched, res, err := s.EndDrag("box-1", geometry.Vec3{X: 0, Y: -450, Z: 0})

		require.NoError(t, err)
		assert.True(t, res.Resolved)
		assert.Equal(t, 0, res.Depth)
		moved := patched.Details[0].Order.Products[0]
		assert.InDelta(t, 450.0, moved.X, geometry.Eps)
		assert.InDelta(t, 0.0, moved.Y, geometry.Eps)
		assert.InDelta(t, 450.0, moved.Z, geometry.Eps)
		// The pre-drag tree stays current until the caller commits.
		assert.Same(t, original, s.Batch())
		s.Commit(patched)
		assert.Same(t, patched, s.Batch())
	})

	t.Run("overlapping target slides flush against the obstacle", func(t *testing.T) {
		s := newTestSession(sessionBatch())
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		// Target overlaps box-2; the resolver pushes back along x.
		patched, res, err := s.EndDrag("box-1", geometry.Vec3{X: -20, Y: -450, Z: -450})

		require.NoError(t, err)
		assert.True(t, res.Resolved)
		assert.Equal(t, 1, res.Depth)
		assert.True(t, res.Position.ApproxEqual(geometry.Vec3{X: -50, Y: -450, Z: -450}))
		assert.InDelta(t, 400.0, patched.Details[0].Order.Products[0].X, geometry.Eps)
	})

	t.Run("exhausted resolution snaps back and leaves the tree untouched", func(t *testing.T) {
		// Two chained obstacles with a depth ceiling of one: clearing the
		// first correction still overlaps, so resolution gives up.
		b := &model.Batch{
			BatchID:    1,
			LoadLength: 1000,
			LoadWidth:  1000,
			LoadHeight: 1000,
			Details: []model.Detail{
				{Order: &model.Order{Products: []model.Box{
					boxAt("box-a", 350, 450, 450),
					boxAt("box-b", 450, 450, 450),
					boxAt("box-1", 750, 450, 450),
				}}},
			},
		}
		s := NewSession(b, resolver.New(1))
		s.SetEditMode(true)
		require.NoError(t, s.Select("box-1"))

		patched, res, err := s.EndDrag("box-1", geometry.Vec3{X: -75, Y: 0, Z: 0})

		require.NoError(t, err)
		assert.False(t, res.Resolved)
		// Snap back to the pre-drag center.
		assert.True(t, res.Position.ApproxEqual(geometry.Vec3{X: 300, Y: 0, Z: 0}))
		assert.Same(t, b, patched)
		assert.Equal(t, 750.0, s.Batch().Details[0].Order.Products[2].X)
	})

	t.Run("requires edit mode and selection", func(t *testing.T) {
		s := newTestSession(sessionBatch())

		_, _, err := s.EndDrag("box-1", geometry.Vec3{})
		assert.ErrorIs(t, err, ErrEditModeOff)

		s.SetEditMode(true)
		_, _, err = s.EndDrag("box-1", geometry.Vec3{})
		assert.ErrorIs(t, err, ErrNotSelected)
	})
}

func TestRotationDirection_Valid(t *testing.T) {
	assert.True(t, RotateHorizontal.Valid())
	assert.True(t, RotateVertical.Valid())
	assert.False(t, RotationDirection("diagonal").Valid())
	assert.False(t, RotationDirection("").Valid())
}
