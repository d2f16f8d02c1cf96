package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePackingCommandIsNotConstructed = errors.New(
	"CompletePackingCommand must be created via NewCompletePackingCommand constructor",
)

// CompletePackingCommand represents a request to mark one member order of a
// picking session as packed. Packing an order is the moment its stock is
// actually decremented.
type CompletePackingCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePackingCommand creates a command to mark an order packed.
func NewCompletePackingCommand(sessionID, orderID kernel.UUID) (CompletePackingCommand, error) {
	if err := errors.Join(sessionID.Validate(), orderID.Validate()); err != nil {
		return CompletePackingCommand{}, err
	}

	return CompletePackingCommand{
		sessionID: sessionID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePackingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePackingCommandIsNotConstructed)
}

// SessionID returns the picking session.
func (c CompletePackingCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// OrderID returns the packed member order.
func (c CompletePackingCommand) OrderID() kernel.UUID {
	return c.orderID
}
