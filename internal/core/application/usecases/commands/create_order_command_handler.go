package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles order placement. The order starts in
// PENDING status with its total derived from the line items plus shipping.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command. Stock is not reserved and not
// decremented here; that happens when the order finishes packing.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lineItems := make([]*order.LineItem, 0, len(cmd.LineItems()))
	for _, spec := range cmd.LineItems() {
		li, err := order.NewLineItem(kernel.NewUUID(), spec.ProductID, spec.Quantity, spec.UnitPrice)
		if err != nil {
			return err
		}
		lineItems = append(lineItems, li)
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.PaymentMethod(),
		cmd.ShippingCost(),
		cmd.Recipient(),
		lineItems,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
