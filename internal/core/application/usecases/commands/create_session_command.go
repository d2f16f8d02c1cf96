package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateSessionCommandIsNotConstructed = errors.New(
	"CreateSessionCommand must be created via NewCreateSessionCommand constructor",
)

// CreateSessionCommand represents a request to open a picking, dispatch or
// return session over a set of orders. The orders are claimed exclusively:
// creation fails if any of them already belongs to an active session of the
// same kind.
type CreateSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	kind      session.Kind
	storeID   string
	orderIDs  []kernel.UUID
	carrierID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateSessionCommand creates a command to open a session.
// A carrier may only be supplied for dispatch sessions.
func NewCreateSessionCommand(
	sessionID kernel.UUID,
	kind session.Kind,
	storeID string,
	orderIDs []kernel.UUID,
	carrierID *kernel.UUID,
) (CreateSessionCommand, error) {
	cmd := CreateSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(sessionID.Validate(), kind.Validate()); err != nil {
		return CreateSessionCommand{}, err
	}
	if storeID == "" {
		return CreateSessionCommand{}, errs.NewValueIsRequiredError("store id")
	}
	if len(orderIDs) == 0 {
		return CreateSessionCommand{}, errs.NewValueIsRequiredError("order ids")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return CreateSessionCommand{}, err
		}
	}
	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return CreateSessionCommand{}, err
		}
		if kind != session.KindDispatch {
			return CreateSessionCommand{}, errs.NewValueIsInvalidError("only dispatch sessions take a carrier")
		}
	}

	cmd.sessionID = sessionID
	cmd.kind = kind
	cmd.storeID = storeID
	cmd.orderIDs = orderIDs
	cmd.carrierID = carrierID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateSessionCommand) Validate() error {
	return c.guard.Validate(ErrCreateSessionCommandIsNotConstructed)
}

// SessionID returns the identifier for the new session.
func (c CreateSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Kind returns the session kind.
func (c CreateSessionCommand) Kind() session.Kind {
	return c.kind
}

// StoreID returns the store whose daily counter numbers the session code.
func (c CreateSessionCommand) StoreID() string {
	return c.storeID
}

// OrderIDs returns the orders to reserve into the session.
func (c CreateSessionCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// CarrierID returns the dispatch carrier, nil when not supplied.
func (c CreateSessionCommand) CarrierID() *kernel.UUID {
	return c.carrierID
}
