package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler performs a direct order transition together
// with the stock side effect the edge carries:
//
//   - IN_PREPARATION -> READY_TO_SHIP decrements stock for every line item
//   - any -> CANCELLED restores stock if a decrement happened before
//
// Transition and ledger write commit in one transaction; a rejected decrement
// leaves the order in its previous status.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.Cancelled)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    switch {
//	    case errors.Is(err, order.ErrInvalidTransition):
//	        // edge not allowed from the current status
//	    case errors.Is(err, product.ErrInsufficientStock):
//	        // packing completion would oversell
//	    }
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderStockUoWFactory
	ledger     *services.InventoryLedger
}

// NewChangeOrderStatusCommandHandler creates a handler for order transitions.
func NewChangeOrderStatusCommandHandler(uowFactory OrderStockUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
	}
}

// Handle processes the transition command.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	previous := o.Status()
	if err = o.TransitionTo(cmd.Target()); err != nil {
		return err
	}

	switch {
	case previous == order.InPreparation && cmd.Target() == order.ReadyToShip:
		if err = h.ledger.DecrementForOrder(ctx, uow.ProductRepository(), o); err != nil {
			return err
		}
	case cmd.Target() == order.Cancelled:
		if err = h.ledger.RestoreForOrder(ctx, uow.ProductRepository(), o); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
