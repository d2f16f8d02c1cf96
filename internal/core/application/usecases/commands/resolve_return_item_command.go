package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrResolveReturnItemCommandIsNotConstructed = errors.New(
	"ResolveReturnItemCommand must be created via NewResolveReturnItemCommand constructor",
)

// ResolveReturnItemCommand represents the inspection verdict for one returned
// line item: accepted back into stock, rejected, or split between both.
type ResolveReturnItemCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	itemID    kernel.UUID
	status    session.ReturnItemStatus
	accepted  int
	rejected  int
	reason    string

	guard guard.ConstructorGuard
}

// NewResolveReturnItemCommand creates a command to resolve a return item.
func NewResolveReturnItemCommand(
	sessionID, itemID kernel.UUID,
	status session.ReturnItemStatus,
	accepted, rejected int,
	reason string,
) (ResolveReturnItemCommand, error) {
	if err := errors.Join(sessionID.Validate(), itemID.Validate(), status.Validate()); err != nil {
		return ResolveReturnItemCommand{}, err
	}
	if accepted < 0 || rejected < 0 {
		return ResolveReturnItemCommand{}, errs.NewValueIsInvalidError("quantities must not be negative")
	}

	return ResolveReturnItemCommand{
		sessionID: sessionID,
		itemID:    itemID,
		status:    status,
		accepted:  accepted,
		rejected:  rejected,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveReturnItemCommand) Validate() error {
	return c.guard.Validate(ErrResolveReturnItemCommandIsNotConstructed)
}

// SessionID returns the return session.
func (c ResolveReturnItemCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ItemID returns the return item to resolve.
func (c ResolveReturnItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Status returns the requested resolution.
func (c ResolveReturnItemCommand) Status() session.ReturnItemStatus {
	return c.status
}

// Accepted returns the quantity accepted back into stock.
func (c ResolveReturnItemCommand) Accepted() int {
	return c.accepted
}

// Rejected returns the quantity rejected.
func (c ResolveReturnItemCommand) Rejected() int {
	return c.rejected
}

// Reason returns why units were rejected.
func (c ResolveReturnItemCommand) Reason() string {
	return c.reason
}
