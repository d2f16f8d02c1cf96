package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetProductMovementsQueryIsNotConstructed = errors.New(
	"GetProductMovementsQuery must be created via NewGetProductMovementsQuery constructor",
)

// GetProductMovementsQuery retrieves the chronological audit trail of one
// product's stock movements. Reading the trail newest to oldest answers "why
// is the stock at this level" without any reconstruction.
type GetProductMovementsQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProductMovementsQuery creates a query for a product's movement trail.
func NewGetProductMovementsQuery(productID kernel.UUID) (GetProductMovementsQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductMovementsQuery{}, err
	}

	return GetProductMovementsQuery{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProductMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductMovementsQueryIsNotConstructed)
}

// ProductID returns the product whose trail is requested.
func (q GetProductMovementsQuery) ProductID() kernel.UUID {
	return q.productID
}

// GetProductMovementsQueryResponse is one audit trail row.
type GetProductMovementsQueryResponse struct {
	ID             kernel.UUID
	OrderID        *kernel.UUID
	QuantityDelta  int
	MovementType   string
	ResultingStock int
	CreatedAt      time.Time
}
