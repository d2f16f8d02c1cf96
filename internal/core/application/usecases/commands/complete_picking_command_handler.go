package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CompletePickingCommandHandler moves a fully picked session to the packing
// stage and every member order from CONFIRMED to IN_PREPARATION.
type CompletePickingCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewCompletePickingCommandHandler creates a handler for picking completion.
func NewCompletePickingCommandHandler(uowFactory SessionUoWFactory) CompletePickingCommandHandler {
	return CompletePickingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the picking completion command. Fails with
// session.ErrPickingIncomplete when any product still has picked < needed.
func (h CompletePickingCommandHandler) Handle(ctx context.Context, cmd CompletePickingCommand) error {
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

	if err = sess.CompletePicking(); err != nil {
		return err
	}

	orders, err := uow.OrderRepository().GetMany(ctx, sess.MemberOrderIDs())
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err = o.TransitionTo(order.InPreparation); err != nil {
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
