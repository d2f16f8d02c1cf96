package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
)

// ErrCarrierNotAssigned is returned when dispatching a session that has no
// carrier yet.
var ErrCarrierNotAssigned = errors.New("dispatch session has no carrier assigned")

// DispatchSessionCommandHandler hands a dispatch session over to its carrier:
// the session moves to DISPATCHED and every member order is bulk-transitioned
// READY_TO_SHIP -> SHIPPED with the session's carrier assigned, all in one
// transaction.
type DispatchSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewDispatchSessionCommandHandler creates a handler for session dispatch.
func NewDispatchSessionCommandHandler(uowFactory SessionUoWFactory) DispatchSessionCommandHandler {
	return DispatchSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
func (h DispatchSessionCommandHandler) Handle(ctx context.Context, cmd DispatchSessionCommand) error {
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

	sess, err := uow.SessionRepository().Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if sess.CarrierID() == nil {
		return ErrCarrierNotAssigned
	}

	if err = sess.Dispatch(); err != nil {
		return err
	}

	orders, err := uow.OrderRepository().GetMany(ctx, sess.MemberOrderIDs())
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err = o.AssignCarrier(*sess.CarrierID()); err != nil {
			return err
		}
		if err = o.TransitionTo(order.Shipped); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
