package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// CompleteReturnSessionCommandHandler closes a return session. Every resolved
// item restores exactly its accepted quantity through the inventory ledger,
// member orders move to RETURNED and the reservations are released, all in
// one transaction. Items still pending restore nothing.
type CompleteReturnSessionCommandHandler struct {
	uowFactory UoWFactory
	ledger     *services.InventoryLedger
}

// NewCompleteReturnSessionCommandHandler creates a handler for return completion.
func NewCompleteReturnSessionCommandHandler(uowFactory UoWFactory) CompleteReturnSessionCommandHandler {
	return CompleteReturnSessionCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
	}
}

// Handle processes the return completion command.
func (h CompleteReturnSessionCommandHandler) Handle(ctx context.Context, cmd CompleteReturnSessionCommand) error {
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

	if err = sess.CompleteReturn(); err != nil {
		return err
	}

	for _, item := range sess.ReturnItems() {
		if item.AcceptedQuantity() == 0 {
			continue
		}
		if err = h.ledger.RestorePartial(
			ctx, uow.ProductRepository(),
			item.ProductID(), item.OrderID(), item.AcceptedQuantity(),
		); err != nil {
			return err
		}
	}

	orders, err := uow.OrderRepository().GetMany(ctx, sess.MemberOrderIDs())
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err = o.MarkReturned(); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
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
