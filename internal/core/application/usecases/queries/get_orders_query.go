package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves order summaries, optionally filtered by status.
// The empty status means no filter.
type GetOrdersQuery struct {
	status string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders. A non-empty status must be
// one of the known wire values, e.g. "PENDING" or "READY_TO_SHIP".
func NewGetOrdersQuery(status string) (GetOrdersQuery, error) {
	if status != "" {
		if _, err := order.StatusFromString(status); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, empty for all orders.
func (q GetOrdersQuery) Status() string {
	return q.status
}

// GetOrdersQueryResponse is one order summary row.
type GetOrdersQueryResponse struct {
	ID            kernel.UUID
	Status        string
	PaymentMethod string
	TotalPrice    decimal.Decimal
	RecipientName string
	RecipientZone string
	CreatedAt     time.Time
}
