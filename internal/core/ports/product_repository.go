package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates
// and their append-only movement trail.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists the current stock level of an existing product.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves a product and locks its row for the remainder of
	// the surrounding transaction. This is the single-writer discipline that
	// serializes concurrent stock mutation per product.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// AppendMovement writes one immutable audit row. Movements are never
	// updated or deleted.
	AppendMovement(ctx context.Context, movement *product.Movement) error

	// HasMovement reports whether a movement of the given type exists for the
	// order. The inventory ledger uses this as its idempotency guard.
	HasMovement(ctx context.Context, orderID kernel.UUID, movementType product.MovementType) (bool, error)
}
