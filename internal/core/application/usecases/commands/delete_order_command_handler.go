package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/services"
)

// ErrOrderHasStockMovements is returned when hard-deleting an order that
// already left its trace in the inventory ledger. Such orders must be
// cancelled instead so the restore movement keeps the trail balanced.
var ErrOrderHasStockMovements = errors.New("order has stock movements and cannot be deleted")

// DeleteOrderCommandHandler handles the hard-delete of never-processed orders.
type DeleteOrderCommandHandler struct {
	uowFactory OrderStockUoWFactory
	ledger     *services.InventoryLedger
}

// NewDeleteOrderCommandHandler creates a handler for order hard-deletion.
func NewDeleteOrderCommandHandler(uowFactory OrderStockUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewInventoryLedger(),
	}
}

// Handle permanently removes an order. Orders whose stock was ever
// decremented are refused with ErrOrderHasStockMovements; movements are
// append-only and deleting their order would orphan the trail.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	decremented, err := h.ledger.HasDecrement(ctx, uow.ProductRepository(), cmd.OrderID())
	if err != nil {
		return err
	}
	if decremented {
		return fmt.Errorf("%w: %s", ErrOrderHasStockMovements, cmd.OrderID())
	}

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
