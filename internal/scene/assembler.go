// Package scene flattens the nested batch tree into render-ready nodes
// and writes interactive edits back into the tree immutably.
package scene

import (
	"github.com/guttosm/loadsim-service/internal/domain/model"
	"github.com/guttosm/loadsim-service/internal/geometry"
)

// NodeKind identifies the variant a render node was flattened from.
type NodeKind string

const (
	// KindBox is a leaf product instance.
	KindBox NodeKind = "box"
	// KindSubPallet is a nested pallet rendered as one opaque item.
	KindSubPallet NodeKind = "sub_pallet"
)

// Node is one placeable item in the flattened scene. Center is the
// geometric center of the item's oriented bounding box relative to the
// center of its parent volume, in model units; the rendering surface
// divides by the batch render scale.
type Node struct {
	ItemID   string            `json:"itemid"`
	Kind     NodeKind          `json:"kind"`
	Name     string            `json:"name"`
	Code     string            `json:"code,omitempty"`
	Color    string            `json:"color"`
	Center   geometry.Vec3     `json:"center"`
	Dims     geometry.Vec3     `json:"dims"`
	Rotation geometry.Rotation `json:"rotation"`
	// Orientation holds the Euler angles in degrees matching Rotation,
	// precomputed so the rendering surface applies them directly.
	Orientation geometry.Vec3 `json:"orientation"`
	Children    []Node        `json:"children,omitempty"`
}

// AABB returns the node's bounding box in its parent's frame.
func (n Node) AABB() geometry.AABB {
	return geometry.BoxFromCenter(n.Center, n.Dims)
}

// Flatten walks the batch's details in order and produces the flat list
// of batch-level placeable items. Sub-pallets are yielded as single
// opaque nodes with their boxes attached as children; bare orders are
// exploded into individual boxes. The result is recomputed from the tree
// on every call and never cached across edits.
func Flatten(b *model.Batch) []Node {
	loadDims := b.LoadDims()
	var nodes []Node
	for _, detail := range b.Details {
		switch {
		case detail.Order != nil:
			for _, box := range detail.Order.Products {
				nodes = append(nodes, boxNode(box, loadDims))
			}
		case detail.SubPallet != nil:
			nodes = append(nodes, subPalletNode(detail.SubPallet, loadDims))
		}
	}
	return nodes
}

func boxNode(box model.Box, parentDims geometry.Vec3) Node {
	dims := box.Dims()
	rx, ry, rz := geometry.Orientation(box.Rotation)
	return Node{
		ItemID:      box.ItemID,
		Kind:        KindBox,
		Name:        box.Name,
		Code:        box.Code,
		Color:       box.Color,
		Center:      geometry.CenterFromCorner(box.Position(), dims, parentDims),
		Dims:        dims,
		Rotation:    box.Rotation,
		Orientation: geometry.Vec3{X: rx, Y: ry, Z: rz},
	}
}

func subPalletNode(sub *model.SubPallet, parentDims geometry.Vec3) Node {
	dims := sub.Dims()
	rx, ry, rz := geometry.Orientation(sub.Rotation)
	node := Node{
		ItemID:      sub.ItemID,
		Kind:        KindSubPallet,
		Name:        sub.Name,
		Code:        sub.Code,
		Color:       sub.Color,
		Center:      geometry.CenterFromCorner(sub.Position(), dims, parentDims),
		Dims:        dims,
		Rotation:    sub.Rotation,
		Orientation: geometry.Vec3{X: rx, Y: ry, Z: rz},
	}
	for _, order := range sub.Orders {
		for _, box := range order.Products {
			node.Children = append(node.Children, childBoxNode(box, sub))
		}
	}
	return node
}

// childBoxNode places a box relative to the sub-pallet's collision-box
// center. Horizontally the box position is stored against the load
// volume; vertically the box sits on the pallet deck, so its center is
// the physical deck height plus half the box height above the pallet's
// base.
func childBoxNode(box model.Box, sub *model.SubPallet) Node {
	node := boxNode(box, sub.LoadDims())
	totalHeight := sub.Height + sub.LoadHeight
	node.Center.Y = sub.Height + box.Y + node.Dims.Y/2 - totalHeight/2
	return node
}

// FindNode returns the batch-level node with the given id, scanning
// flattened order, and whether one was found. Children of sub-pallets
// are not batch-level items and are not matched.
func FindNode(nodes []Node, itemID string) (Node, bool) {
	for _, n := range nodes {
		if n.ItemID == itemID {
			return n, true
		}
	}
	return Node{}, false
}
