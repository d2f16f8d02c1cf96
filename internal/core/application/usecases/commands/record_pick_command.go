package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordPickCommandIsNotConstructed = errors.New(
	"RecordPickCommand must be created via NewRecordPickCommand constructor",
)

// RecordPickCommand represents a warehouse worker reporting the quantity
// physically picked for one product of an open picking session. The quantity
// is absolute, not incremental, so re-submitting a corrected count just
// overwrites the previous one.
type RecordPickCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewRecordPickCommand creates a command to record a picked quantity.
func NewRecordPickCommand(sessionID, productID kernel.UUID, quantity int) (RecordPickCommand, error) {
	if err := errors.Join(sessionID.Validate(), productID.Validate()); err != nil {
		return RecordPickCommand{}, err
	}
	if quantity < 0 {
		return RecordPickCommand{}, errs.NewValueIsInvalidError("quantity must not be negative")
	}

	return RecordPickCommand{
		sessionID: sessionID,
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPickCommand) Validate() error {
	return c.guard.Validate(ErrRecordPickCommandIsNotConstructed)
}

// SessionID returns the picking session.
func (c RecordPickCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ProductID returns the picked product.
func (c RecordPickCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the absolute picked quantity.
func (c RecordPickCommand) Quantity() int {
	return c.quantity
}
