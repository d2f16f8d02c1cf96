package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/session"
)

// CreateSessionCommandHandler opens a session over an exclusively reserved set
// of orders. Eligibility check, code allocation and reservation claims happen
// in one transaction, so of two racing creators contesting an order exactly
// one commits; the other fails with session.ErrOrderAlreadyInSession.
type CreateSessionCommandHandler struct {
	uowFactory SessionUoWFactory
	now        func() time.Time
}

// NewCreateSessionCommandHandler creates a handler for session creation.
func NewCreateSessionCommandHandler(uowFactory SessionUoWFactory) CreateSessionCommandHandler {
	return CreateSessionCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the session creation command. The session code is built
// from the kind prefix, the current day and the store's daily sequence, e.g.
// PREP-26082026-007.
func (h CreateSessionCommandHandler) Handle(ctx context.Context, cmd CreateSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetMany(ctx, cmd.OrderIDs())
	if err != nil {
		return err
	}

	day := h.now()
	sequence, err := uow.SessionRepository().NextSequence(ctx, cmd.StoreID(), cmd.Kind(), day)
	if err != nil {
		return err
	}

	code, err := session.FormatCode(cmd.Kind(), day, sequence)
	if err != nil {
		return err
	}

	sess, err := session.NewSession(cmd.SessionID(), cmd.Kind(), code, orders)
	if err != nil {
		return err
	}

	if cmd.CarrierID() != nil {
		if err = sess.AssignCarrier(*cmd.CarrierID()); err != nil {
			return err
		}
	}

	if err = uow.SessionRepository().ReserveOrders(ctx, cmd.Kind(), sess.ID(), cmd.OrderIDs()); err != nil {
		return err
	}

	if err = uow.SessionRepository().Add(ctx, sess); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
