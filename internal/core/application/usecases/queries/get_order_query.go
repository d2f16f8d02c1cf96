// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries go straight to the database with raw SQL and return read models
// shaped for their specific use case.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve an order by identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderLineItemResponse is one ordered product position in the read model.
type OrderLineItemResponse struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// GetOrderQueryResponse is the order read model with recipient details and
// line items.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	Status           string
	CustomerID       kernel.UUID
	CarrierID        *kernel.UUID
	PaymentMethod    string
	ShippingCost     decimal.Decimal
	TotalPrice       decimal.Decimal
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	RecipientZone    string
	RecipientMapLink string
	RecipientNotes   string
	CreatedAt        time.Time
	LineItems        []OrderLineItemResponse
}
