package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CarrierRepository defines the persistence contract for carrier aggregates.
type CarrierRepository interface {
	// Add persists a new carrier with its zone rate table.
	Add(ctx context.Context, aggregate *carrier.Carrier) error

	// Get retrieves a carrier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)
}
