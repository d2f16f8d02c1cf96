package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteReturnSessionCommandIsNotConstructed = errors.New(
	"CompleteReturnSessionCommand must be created via NewCompleteReturnSessionCommand constructor",
)

// CompleteReturnSessionCommand represents a request to close a return session,
// restoring the accepted quantities and marking the member orders returned.
type CompleteReturnSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteReturnSessionCommand creates a command to complete a return session.
func NewCompleteReturnSessionCommand(sessionID kernel.UUID) (CompleteReturnSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CompleteReturnSessionCommand{}, err
	}

	return CompleteReturnSessionCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteReturnSessionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnSessionCommandIsNotConstructed)
}

// SessionID returns the return session.
func (c CompleteReturnSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
