package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemSpec is one ordered product position as submitted by the caller.
type LineItemSpec struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents a request to place a new order. The order
// starts in PENDING status; stock is not touched until packing completes.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID, order.PaymentCash,
//	    decimal.NewFromInt(5),
//	    order.Recipient{Name: "Aye Chan", Zone: "yangon"},
//	    []LineItemSpec{{ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromInt(100)}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	paymentMethod order.PaymentMethod
	shippingCost  decimal.Decimal
	recipient     order.Recipient
	lineItems     []LineItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Requires at least one line item and a recipient name; the payment method
// must be one of the known set.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	paymentMethod order.PaymentMethod,
	shippingCost decimal.Decimal,
	recipient order.Recipient,
	lineItems []LineItemSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if shippingCost.IsNegative() {
		return CreateOrderCommand{}, errs.NewValueIsInvalidError("shipping cost must not be negative")
	}
	if recipient.Name == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("recipient")
	}
	if len(lineItems) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("line items")
	}

	cmd.orderID = orderID
	cmd.customerID = customerID
	cmd.paymentMethod = paymentMethod
	cmd.shippingCost = shippingCost
	cmd.recipient = recipient
	cmd.lineItems = lineItems
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// PaymentMethod returns how the order is paid.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// ShippingCost returns the shipping cost charged to the customer.
func (c CreateOrderCommand) ShippingCost() decimal.Decimal {
	return c.shippingCost
}

// Recipient returns the delivery contact details.
func (c CreateOrderCommand) Recipient() order.Recipient {
	return c.recipient
}

// LineItems returns the submitted line item specs.
func (c CreateOrderCommand) LineItems() []LineItemSpec {
	return c.lineItems
}
