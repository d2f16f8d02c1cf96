package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchSessionCommandIsNotConstructed = errors.New(
	"DispatchSessionCommand must be created via NewDispatchSessionCommand constructor",
)

// DispatchSessionCommand represents the hand-off of a dispatch session to its
// carrier.
type DispatchSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchSessionCommand creates a command to dispatch a session.
func NewDispatchSessionCommand(sessionID kernel.UUID) (DispatchSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return DispatchSessionCommand{}, err
	}

	return DispatchSessionCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchSessionCommand) Validate() error {
	return c.guard.Validate(ErrDispatchSessionCommandIsNotConstructed)
}

// SessionID returns the dispatch session.
func (c DispatchSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
