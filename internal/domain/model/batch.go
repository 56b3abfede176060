// Package model defines the core domain entities for the load simulation
// service: the batch tree produced by the packing backend and edited by
// the interactive 3D placement editor.
//
// Wire field names follow the simulation documents exactly so fetched
// payloads round-trip losslessly through the editor.
package model

import (
	"encoding/json"

	"github.com/guttosm/loadsim-service/internal/geometry"
)

// BatchType distinguishes the two kinds of simulated load units.
type BatchType string

const (
	// BatchTypePallet is a simulated pallet load.
	BatchTypePallet BatchType = "pallet"
	// BatchTypeContainer is a simulated shipping container load.
	BatchTypeContainer BatchType = "container"
)

// Batch is one simulated unit (a pallet or a container) and everything
// placed inside it. Its details are either bare orders, whose boxes sit
// directly in the batch, or sub-pallets that hold orders of their own.
type Batch struct {
	BatchID      int64     `json:"batchid"`
	BatchName    string    `json:"batchname"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	BatchType    BatchType `json:"batchtype"`
	Length       float64   `json:"length"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Weight       float64   `json:"weight"`
	LoadLength   float64   `json:"load_length"`
	LoadWidth    float64   `json:"load_width"`
	LoadHeight   float64   `json:"load_height"`
	LoadWeight   float64   `json:"load_weight"`
	Color        string    `json:"color"`
	DoorPosition string    `json:"door_position,omitempty"`
	Details      []Detail  `json:"details"`
}

// OwnDims returns the batch's outer extents as (length, height, width).
func (b *Batch) OwnDims() geometry.Vec3 {
	return geometry.Vec3{X: b.Length, Y: b.Height, Z: b.Width}
}

// LoadDims returns the usable load volume as (length, height, width).
// Positions of all direct children are stored against this volume.
func (b *Batch) LoadDims() geometry.Vec3 {
	return geometry.Vec3{X: b.LoadLength, Y: b.LoadHeight, Z: b.LoadWidth}
}

// RenderScale returns the per-batch normalization factor (largest of the
// own and load extents) used by the rendering surface.
func (b *Batch) RenderScale() geometry.Scale {
	return geometry.NewScale(b.OwnDims(), b.LoadDims())
}

// Detail is one entry directly under a batch: either a bare Order or a
// SubPallet. Exactly one of the two fields is non-nil.
type Detail struct {
	Order     *Order
	SubPallet *SubPallet
}

// MarshalJSON emits the active variant directly, matching the simulation
// document shape where details is a heterogeneous array.
func (d Detail) MarshalJSON() ([]byte, error) {
	switch {
	case d.Order != nil:
		return json.Marshal(d.Order)
	case d.SubPallet != nil:
		return json.Marshal(d.SubPallet)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON discriminates the two variants: a bare order carries a
// top-level products array, a sub-pallet carries mastertype "sim_batch".
func (d *Detail) UnmarshalJSON(data []byte) error {
	var probe struct {
		Products   json.RawMessage `json:"products"`
		MasterType string          `json:"mastertype"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Products != nil && probe.MasterType != MasterTypeSimBatch {
		var order Order
		if err := json.Unmarshal(data, &order); err != nil {
			return err
		}
		d.Order = &order
		d.SubPallet = nil
		return nil
	}
	var sub SubPallet
	if err := json.Unmarshal(data, &sub); err != nil {
		return err
	}
	d.SubPallet = &sub
	d.Order = nil
	return nil
}

// Order is a customer order: an ordered sequence of box instances.
type Order struct {
	OrdersID     int64  `json:"orders_id"`
	OrdersName   string `json:"orders_name"`
	OrdersNumber string `json:"orders_number"`
	Products     []Box  `json:"products"`
}

// Master type discriminators used in simulation documents.
const (
	// MasterTypeProduct marks a leaf product instance.
	MasterTypeProduct = "product"
	// MasterTypeSimBatch marks a nested simulated batch (sub-pallet).
	MasterTypeSimBatch = "sim_batch"
)

// Box is a single placeable product instance. Position is the stored
// corner-convention offset of its oriented footprint inside the parent's
// load volume. The stacking flags are display-only; the drag resolver
// does not enforce them.
type Box struct {
	ItemID     string            `json:"itemid"`
	MasterType string            `json:"mastertype,omitempty"`
	MasterID   int64             `json:"masterid,omitempty"`
	Name       string            `json:"name"`
	Code       string            `json:"code"`
	Color      string            `json:"color"`
	Length     float64           `json:"length"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Weight     float64           `json:"weight,omitempty"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Z          float64           `json:"z"`
	Rotation   geometry.Rotation `json:"rotation"`
	IsStack    bool              `json:"is_stack,omitempty"`
	IsFragile  bool              `json:"is_fragile,omitempty"`
	IsOnTop    bool              `json:"is_on_top,omitempty"`
	IsSideUp   bool              `json:"is_side_up,omitempty"`
	MaxStack   int               `json:"max_stack,omitempty"`
}

// Position returns the stored corner-convention position.
func (b Box) Position() geometry.Vec3 {
	return geometry.Vec3{X: b.X, Y: b.Y, Z: b.Z}
}

// Dims returns the axis-aligned extents under the box's rotation.
func (b Box) Dims() geometry.Vec3 {
	return geometry.RotatedDims(b.Length, b.Height, b.Width, b.Rotation)
}

// WithPosition returns a copy of the box moved to pos.
func (b Box) WithPosition(pos geometry.Vec3) Box {
	b.X, b.Y, b.Z = pos.X, pos.Y, pos.Z
	return b
}

// WithRotation returns a copy of the box with rotation r.
func (b Box) WithRotation(r geometry.Rotation) Box {
	b.Rotation = r
	return b
}

// SubPallet is a pallet placed inside a batch, itself holding orders of
// boxes. Its rendered height for collision purposes is its physical
// height plus its load height (product stacked on top of the deck).
type SubPallet struct {
	ItemID     string            `json:"itemid"`
	MasterType string            `json:"mastertype"`
	MasterID   int64             `json:"masterid,omitempty"`
	BatchID    int64             `json:"batchid,omitempty"`
	Name       string            `json:"name"`
	Code       string            `json:"code"`
	Color      string            `json:"color"`
	Length     float64           `json:"length"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	LoadLength float64           `json:"load_length"`
	LoadWidth  float64           `json:"load_width"`
	LoadHeight float64           `json:"load_height"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Z          float64           `json:"z"`
	Rotation   geometry.Rotation `json:"rotation"`
	Orders     []Order           `json:"orders"`
}

// Position returns the stored corner-convention position.
func (s *SubPallet) Position() geometry.Vec3 {
	return geometry.Vec3{X: s.X, Y: s.Y, Z: s.Z}
}

// Dims returns the axis-aligned collision extents under the sub-pallet's
// rotation: physical height plus load height.
func (s *SubPallet) Dims() geometry.Vec3 {
	return geometry.RotatedDims(s.Length, s.Height+s.LoadHeight, s.Width, s.Rotation)
}

// LoadDims returns the usable load volume on top of the deck.
func (s *SubPallet) LoadDims() geometry.Vec3 {
	return geometry.Vec3{X: s.LoadLength, Y: s.LoadHeight, Z: s.LoadWidth}
}

// WithPosition returns a copy of the sub-pallet moved to pos. Orders are
// shared with the receiver; the tree treats them as immutable values.
func (s *SubPallet) WithPosition(pos geometry.Vec3) *SubPallet {
	out := *s
	out.X, out.Y, out.Z = pos.X, pos.Y, pos.Z
	return &out
}

// WithRotation returns a copy of the sub-pallet with rotation r.
func (s *SubPallet) WithRotation(r geometry.Rotation) *SubPallet {
	out := *s
	out.Rotation = r
	return &out
}
