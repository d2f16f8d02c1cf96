package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelSessionCommandIsNotConstructed = errors.New(
	"CancelSessionCommand must be created via NewCancelSessionCommand constructor",
)

// CancelSessionCommand represents a request to abort a session and release
// its order reservations.
type CancelSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelSessionCommand creates a command to cancel a session.
func NewCancelSessionCommand(sessionID kernel.UUID) (CancelSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CancelSessionCommand{}, err
	}

	return CancelSessionCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelSessionCommand) Validate() error {
	return c.guard.Validate(ErrCancelSessionCommandIsNotConstructed)
}

// SessionID returns the session to cancel.
func (c CancelSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
