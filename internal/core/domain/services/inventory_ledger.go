package services

import (
	"context"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// InventoryLedger is the only component allowed to mutate stock. Every change
// is written as one movement row plus the stock update inside the caller's
// transaction; per-product serialization comes from the repository's
// GetForUpdate row lock, taken in a stable order to avoid lock cycles.
//
// All order-bound operations are idempotency-guarded by movement existence:
// retrying a decrement or restore that already happened is a no-op, so
// transient persistence failures can be safely retried by the caller.
type InventoryLedger struct{}

// NewInventoryLedger creates the ledger domain service.
func NewInventoryLedger() *InventoryLedger {
	return &InventoryLedger{}
}

// HasDecrement reports whether the order's stock was already decremented.
func (l *InventoryLedger) HasDecrement(
	ctx context.Context, products ports.ProductRepository, orderID kernel.UUID,
) (bool, error) {
	return products.HasMovement(ctx, orderID, product.MovementOrderDecrement)
}

// DecrementForOrder removes stock for every line item of the order, exactly
// once per order. Under the strict policy the call is all-or-nothing: if any
// item would take its product below zero, nothing is decremented and
// product.ErrInsufficientStock is returned.
func (l *InventoryLedger) DecrementForOrder(
	ctx context.Context, products ports.ProductRepository, o *order.Order,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	decremented, err := products.HasMovement(ctx, o.ID(), product.MovementOrderDecrement)
	if err != nil {
		return err
	}
	if decremented {
		return nil
	}

	quantities, productIDs := quantitiesByProduct(o)

	locked := make(map[kernel.UUID]*product.Product, len(productIDs))
	for _, productID := range productIDs {
		p, lockErr := products.GetForUpdate(ctx, productID)
		if lockErr != nil {
			return lockErr
		}
		locked[productID] = p
	}

	// Strict pre-check before any write: no partial decrement across line items.
	for _, productID := range productIDs {
		if !locked[productID].CanDecrement(quantities[productID]) {
			return fmt.Errorf("%w: order %s needs %d of product %s, stock is %d",
				product.ErrInsufficientStock, o.ID(), quantities[productID], productID, locked[productID].Stock())
		}
	}

	orderID := o.ID()
	for _, productID := range productIDs {
		p := locked[productID]
		qty := quantities[productID]

		if decErr := p.Decrement(qty); decErr != nil {
			return decErr
		}
		if appendErr := l.append(ctx, products, p, &orderID, -qty, product.MovementOrderDecrement); appendErr != nil {
			return appendErr
		}
	}

	return nil
}

// RestoreForOrder symmetrically restores every line item of a cancelled
// order. It only acts when a decrement movement exists with no matching
// restore movement; otherwise it is a no-op.
func (l *InventoryLedger) RestoreForOrder(
	ctx context.Context, products ports.ProductRepository, o *order.Order,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	decremented, err := products.HasMovement(ctx, o.ID(), product.MovementOrderDecrement)
	if err != nil {
		return err
	}
	if !decremented {
		return nil
	}

	restored, err := products.HasMovement(ctx, o.ID(), product.MovementOrderRestoreCancel)
	if err != nil {
		return err
	}
	if restored {
		return nil
	}

	quantities, productIDs := quantitiesByProduct(o)
	orderID := o.ID()

	for _, productID := range productIDs {
		p, lockErr := products.GetForUpdate(ctx, productID)
		if lockErr != nil {
			return lockErr
		}

		qty := quantities[productID]
		if incErr := p.Increment(qty); incErr != nil {
			return incErr
		}
		if appendErr := l.append(ctx, products, p, &orderID, qty, product.MovementOrderRestoreCancel); appendErr != nil {
			return appendErr
		}
	}

	return nil
}

// RestorePartial restores exactly the accepted quantity of a resolved return
// item. The rejected quantity never restores stock.
func (l *InventoryLedger) RestorePartial(
	ctx context.Context, products ports.ProductRepository,
	productID, orderID kernel.UUID, acceptedQty int,
) error {
	if acceptedQty <= 0 {
		return errs.NewValueIsInvalidError("accepted quantity must be greater than 0")
	}

	p, err := products.GetForUpdate(ctx, productID)
	if err != nil {
		return err
	}

	if err = p.Increment(acceptedQty); err != nil {
		return err
	}
	return l.append(ctx, products, p, &orderID, acceptedQty, product.MovementReturnRestorePartial)
}

func (l *InventoryLedger) append(
	ctx context.Context, products ports.ProductRepository,
	p *product.Product, orderID *kernel.UUID, delta int, movementType product.MovementType,
) error {
	movement, err := product.NewMovement(kernel.NewUUID(), p.ID(), orderID, delta, movementType, p.Stock())
	if err != nil {
		return err
	}

	if err = products.AppendMovement(ctx, movement); err != nil {
		return err
	}
	return products.Update(ctx, p)
}

// quantitiesByProduct aggregates line item quantities per product and returns
// the product ids sorted for a stable lock acquisition order.
func quantitiesByProduct(o *order.Order) (map[kernel.UUID]int, []kernel.UUID) {
	quantities := make(map[kernel.UUID]int)
	var ids []kernel.UUID
	for _, li := range o.LineItems() {
		if _, ok := quantities[li.ProductID()]; !ok {
			ids = append(ids, li.ProductID())
		}
		quantities[li.ProductID()] += li.Quantity()
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return quantities, ids
}
