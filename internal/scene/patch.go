package scene

import (
	"github.com/guttosm/loadsim-service/internal/domain/model"
	"github.com/guttosm/loadsim-service/internal/geometry"
)

// MoveItem returns a copy of the batch with the identified item moved
// to the given corner-convention position. Batch-level items and boxes
// nested inside a sub-pallet's orders are both reachable. The returned
// bool reports whether the item was found; on a miss the original
// batch is returned untouched so callers can detect stale ids without
// a second lookup.
func MoveItem(b *model.Batch, itemID string, pos geometry.Vec3) (*model.Batch, bool) {
	return patch(b, itemID,
		func(box model.Box) model.Box { return box.WithPosition(pos) },
		func(sub *model.SubPallet) *model.SubPallet { return sub.WithPosition(pos) },
	)
}

// RotateItem returns a copy of the batch with the identified item set
// to rotation r. Unknown ids leave the batch untouched.
func RotateItem(b *model.Batch, itemID string, r geometry.Rotation) (*model.Batch, bool) {
	return patch(b, itemID,
		func(box model.Box) model.Box { return box.WithRotation(r) },
		func(sub *model.SubPallet) *model.SubPallet { return sub.WithRotation(r) },
	)
}

// patch rewrites a single leaf anywhere in the detail tree and rebuilds
// the spine above it. Every container on the path from the edited leaf
// to the root is a fresh allocation; siblings and untouched subtrees
// are shared with the input, which the editor relies on to keep the
// pre-drag tree valid as a rollback target. An id matches exactly one
// mutation path: a batch-level box, a sub-pallet, or a box inside one
// of a sub-pallet's orders.
func patch(
	b *model.Batch,
	itemID string,
	applyBox func(model.Box) model.Box,
	applySub func(*model.SubPallet) *model.SubPallet,
) (*model.Batch, bool) {
	for i, detail := range b.Details {
		switch {
		case detail.Order != nil:
			for j, box := range detail.Order.Products {
				if box.ItemID != itemID {
					continue
				}
				order := *detail.Order
				order.Products = make([]model.Box, len(detail.Order.Products))
				copy(order.Products, detail.Order.Products)
				order.Products[j] = applyBox(box)
				return rebuild(b, i, model.Detail{Order: &order}), true
			}
		case detail.SubPallet != nil:
			if detail.SubPallet.ItemID == itemID {
				return rebuild(b, i, model.Detail{SubPallet: applySub(detail.SubPallet)}), true
			}
			if sub, ok := patchNestedBox(detail.SubPallet, itemID, applyBox); ok {
				return rebuild(b, i, model.Detail{SubPallet: sub}), true
			}
		}
	}
	return b, false
}

// patchNestedBox rewrites one box inside a sub-pallet's orders,
// rebuilding the sub-pallet spine above it. Untouched orders keep
// sharing their product arrays with the input.
func patchNestedBox(sub *model.SubPallet, itemID string, applyBox func(model.Box) model.Box) (*model.SubPallet, bool) {
	for i, order := range sub.Orders {
		for j, box := range order.Products {
			if box.ItemID != itemID {
				continue
			}
			out := *sub
			out.Orders = make([]model.Order, len(sub.Orders))
			copy(out.Orders, sub.Orders)
			products := make([]model.Box, len(order.Products))
			copy(products, order.Products)
			products[j] = applyBox(box)
			out.Orders[i].Products = products
			return &out, true
		}
	}
	return nil, false
}

func rebuild(b *model.Batch, index int, replacement model.Detail) *model.Batch {
	out := *b
	out.Details = make([]model.Detail, len(b.Details))
	copy(out.Details, b.Details)
	out.Details[index] = replacement
	return &out
}
