package session

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DeliveryResult is the courier-reported outcome for one order of a dispatch
// session.
type DeliveryResult string

const (
	// DeliveryPending means no result has been imported yet.
	DeliveryPending DeliveryResult = "pending"

	// DeliveryDelivered means the carrier delivered the order.
	DeliveryDelivered DeliveryResult = "delivered"

	// DeliveryFailed means the delivery attempt failed; the order stays shipped.
	DeliveryFailed DeliveryResult = "failed"
)

// Validate checks the result against the known set.
func (r DeliveryResult) Validate() error {
	switch r {
	case DeliveryPending, DeliveryDelivered, DeliveryFailed:
		return nil
	}
	return fmt.Errorf("%q is not a known delivery result", string(r))
}

// Delivery tracks the carrier outcome and collected COD amount for one member
// order of a dispatch session.
type Delivery struct {
	orderID      kernel.UUID
	result       DeliveryResult
	codCollected decimal.Decimal
}

// NewDelivery creates a pending delivery tracker for a member order.
func NewDelivery(orderID kernel.UUID) (*Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return &Delivery{orderID: orderID, result: DeliveryPending, codCollected: decimal.Zero}, nil
}

// RestoreDelivery reconstructs a delivery tracker from persistent storage.
func RestoreDelivery(orderID kernel.UUID, result DeliveryResult, codCollected decimal.Decimal) (*Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	return &Delivery{orderID: orderID, result: result, codCollected: codCollected}, nil
}

// OrderID returns the tracked member order.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Result returns the imported delivery outcome.
func (d *Delivery) Result() DeliveryResult {
	return d.result
}

// CODCollected returns the cash amount the courier reported collecting.
func (d *Delivery) CODCollected() decimal.Decimal {
	return d.codCollected
}
