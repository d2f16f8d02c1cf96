package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// CompletePackingCommandHandler marks one member order of a picking session as
// packed. The order moves IN_PREPARATION -> READY_TO_SHIP and its stock is
// decremented through the inventory ledger, all in one transaction; if the
// decrement is rejected the order stays in preparation. When the last member
// order is packed the session completes and its reservations are released.
//
// Example:
//
//	handler := NewCompletePackingCommandHandler(uowFactory)
//	cmd, _ := NewCompletePackingCommand(sessionID, orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    if errors.Is(err, product.ErrInsufficientStock) {
//	        // packing this order would oversell; nothing was changed
//	    }
//	}
type CompletePackingCommandHandler struct {
	uowFactory UoWFactory
	ledger     *services.InventoryLedger
}

// NewCompletePackingCommandHandler creates a handler for packing completion.
func NewCompletePackingCommandHandler(uowFactory UoWFactory) CompletePackingCommandHandler {
	return CompletePackingCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
	}
}

// Handle processes the packing completion command.
func (h CompletePackingCommandHandler) Handle(ctx context.Context, cmd CompletePackingCommand) error {
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

	allPacked, err := sess.MarkOrderPacked(cmd.OrderID())
	if err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.TransitionTo(order.ReadyToShip); err != nil {
		return err
	}

	if err = h.ledger.DecrementForOrder(ctx, uow.ProductRepository(), o); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if allPacked {
		if err = uow.SessionRepository().ReleaseOrders(ctx, sess.ID()); err != nil {
			return err
		}
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
