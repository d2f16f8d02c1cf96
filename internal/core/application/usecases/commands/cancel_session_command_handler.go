package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/session"
)

// CancelSessionCommandHandler aborts a session, releases its reservations and
// undoes the order side effects of the aborted stage. Cancelling an already
// dispatched session reverts every member order from SHIPPED back to
// READY_TO_SHIP in the same transaction, so the orders immediately become
// eligible for another dispatch.
type CancelSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewCancelSessionCommandHandler creates a handler for session cancellation.
func NewCancelSessionCommandHandler(uowFactory SessionUoWFactory) CancelSessionCommandHandler {
	return CancelSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h CancelSessionCommandHandler) Handle(ctx context.Context, cmd CancelSessionCommand) error {
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

	revertShipped := sess.Kind() == session.KindDispatch && sess.Status() == session.StatusDispatched

	if err = sess.Cancel(); err != nil {
		return err
	}

	if revertShipped {
		orders, ordersErr := uow.OrderRepository().GetMany(ctx, sess.MemberOrderIDs())
		if ordersErr != nil {
			return ordersErr
		}
		for _, o := range orders {
			if err = o.ResetToReadyToShip(); err != nil {
				return err
			}
			if err = uow.OrderRepository().Update(ctx, o); err != nil {
				return err
			}
		}
	}

	if err = uow.SessionRepository().ReleaseOrders(ctx, sess.ID()); err != nil {
		return err
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
