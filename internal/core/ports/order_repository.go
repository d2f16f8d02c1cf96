package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetMany retrieves the orders with the given identifiers.
	// Fails with a not-found error if any identifier has no order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// Delete removes an order permanently. Used only for the hard-delete of
	// never-processed orders; callers verify no decrement movement exists.
	Delete(ctx context.Context, id kernel.UUID) error
}
