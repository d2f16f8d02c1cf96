package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompletePickingCommandIsNotConstructed = errors.New(
	"CompletePickingCommand must be created via NewCompletePickingCommand constructor",
)

// CompletePickingCommand represents a request to close the picking stage of a
// session and move it to packing. Requires every product fully picked.
type CompletePickingCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePickingCommand creates a command to finish picking.
func NewCompletePickingCommand(sessionID kernel.UUID) (CompletePickingCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CompletePickingCommand{}, err
	}

	return CompletePickingCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompletePickingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickingCommandIsNotConstructed)
}

// SessionID returns the picking session.
func (c CompletePickingCommand) SessionID() kernel.UUID {
	return c.sessionID
}
