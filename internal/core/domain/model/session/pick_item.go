package session

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// PickItem tracks picking progress of one product aggregated over all member
// orders of a picking session.
type PickItem struct {
	productID      kernel.UUID
	quantityNeeded int
	quantityPicked int
}

// NewPickItem creates a pick tracker for a product with the total quantity
// needed across the session's member orders.
func NewPickItem(productID kernel.UUID, quantityNeeded int) (*PickItem, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantityNeeded <= 0 {
		return nil, errs.NewValueIsInvalidError("quantity needed must be greater than 0")
	}

	return &PickItem{productID: productID, quantityNeeded: quantityNeeded}, nil
}

// RestorePickItem reconstructs a pick tracker from persistent storage.
func RestorePickItem(productID kernel.UUID, quantityNeeded, quantityPicked int) (*PickItem, error) {
	item, err := NewPickItem(productID, quantityNeeded)
	if err != nil {
		return nil, err
	}
	if quantityPicked < 0 || quantityPicked > quantityNeeded {
		return nil, errs.NewValueIsOutOfRangeError("quantity picked", quantityPicked, 0, quantityNeeded)
	}

	item.quantityPicked = quantityPicked
	return item, nil
}

// ProductID returns the tracked product.
func (p *PickItem) ProductID() kernel.UUID {
	return p.productID
}

// QuantityNeeded returns the total quantity to pick.
func (p *PickItem) QuantityNeeded() int {
	return p.quantityNeeded
}

// QuantityPicked returns the quantity picked so far.
func (p *PickItem) QuantityPicked() int {
	return p.quantityPicked
}

// IsComplete reports whether picked equals needed.
func (p *PickItem) IsComplete() bool {
	return p.quantityPicked == p.quantityNeeded
}

// record sets the absolute picked quantity. Exceeding the needed quantity is
// rejected; picking may be corrected downwards while the session is open.
func (p *PickItem) record(quantity int) error {
	if quantity < 0 || quantity > p.quantityNeeded {
		return errs.NewValueIsOutOfRangeError("picked quantity", quantity, 0, p.quantityNeeded)
	}

	p.quantityPicked = quantity
	return nil
}
