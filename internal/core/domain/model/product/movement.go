package product

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MovementType classifies a stock movement by the lifecycle edge that caused it.
type MovementType string

const (
	// MovementOrderDecrement is the one-time stock removal when an order
	// finishes packing (IN_PREPARATION -> READY_TO_SHIP).
	MovementOrderDecrement MovementType = "order_decrement"

	// MovementOrderRestoreCancel is the full symmetric restore when an order
	// is cancelled after its decrement happened.
	MovementOrderRestoreCancel MovementType = "order_restore_cancel"

	// MovementReturnRestorePartial restores exactly the accepted quantity of a
	// resolved return item. Rejected quantity never restores stock.
	MovementReturnRestorePartial MovementType = "return_restore_partial"
)

// Validate checks the movement type against the known set.
func (m MovementType) Validate() error {
	switch m {
	case MovementOrderDecrement, MovementOrderRestoreCancel, MovementReturnRestorePartial:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%q is not a known movement type", string(m)))
}

// ErrMovementIsNotConstructed is returned when a Movement was not created
// through the NewMovement constructor.
var ErrMovementIsNotConstructed = errors.New("Movement must be created via NewMovement constructor")

// Movement is one immutable row of the inventory audit trail. Movements are
// append-only: they are never updated or deleted, and the sum of deltas for a
// product always equals current stock minus initial stock. Corrections are
// expressed as new movements with the opposite sign, never as edits.
type Movement struct {
	id             kernel.UUID
	productID      kernel.UUID
	orderID        *kernel.UUID
	quantityDelta  int
	movementType   MovementType
	resultingStock int
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewMovement creates an audit record for one signed stock change.
// orderID is nil for adjustments that are not tied to an order.
func NewMovement(
	id kernel.UUID,
	productID kernel.UUID,
	orderID *kernel.UUID,
	quantityDelta int,
	movementType MovementType,
	resultingStock int,
) (*Movement, error) {
	m := &Movement{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		movementType.Validate(),
	); err != nil {
		return nil, err
	}

	if quantityDelta == 0 {
		return nil, errs.NewValueIsInvalidError("quantity delta must not be zero")
	}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	m.id = id
	m.productID = productID
	m.orderID = orderID
	m.quantityDelta = quantityDelta
	m.movementType = movementType
	m.resultingStock = resultingStock
	return m, nil
}

// RestoreMovement reconstructs a movement row from persistent storage.
func RestoreMovement(
	id kernel.UUID,
	productID kernel.UUID,
	orderID *kernel.UUID,
	quantityDelta int,
	movementType MovementType,
	resultingStock int,
	createdAt time.Time,
) (*Movement, error) {
	m, err := NewMovement(id, productID, orderID, quantityDelta, movementType, resultingStock)
	if err != nil {
		return nil, err
	}

	m.createdAt = createdAt
	return m, nil
}

// Validate ensures the movement was created through a factory method.
func (m *Movement) Validate() error {
	if m == nil {
		return ErrMovementIsNotConstructed
	}
	return m.guard.Validate(ErrMovementIsNotConstructed)
}

// ID returns the movement's unique identifier.
func (m *Movement) ID() kernel.UUID {
	return m.id
}

// ProductID returns the product this movement belongs to.
func (m *Movement) ProductID() kernel.UUID {
	return m.productID
}

// OrderID returns the causing order, nil for non-order adjustments.
func (m *Movement) OrderID() *kernel.UUID {
	return m.orderID
}

// QuantityDelta returns the signed stock change.
func (m *Movement) QuantityDelta() int {
	return m.quantityDelta
}

// Type returns the movement classification.
func (m *Movement) Type() MovementType {
	return m.movementType
}

// ResultingStock returns the stock level right after this movement applied.
func (m *Movement) ResultingStock() int {
	return m.resultingStock
}

// CreatedAt returns when the movement was appended.
func (m *Movement) CreatedAt() time.Time {
	return m.createdAt
}
