package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProductMovementsQueryHandler reads a product's movement audit trail.
type GetProductMovementsQueryHandler struct {
	db *gorm.DB
}

// NewGetProductMovementsQueryHandler creates a handler for trail retrieval.
func NewGetProductMovementsQueryHandler(db *gorm.DB) GetProductMovementsQueryHandler {
	return GetProductMovementsQueryHandler{db: db}
}

// Handle executes the query. Rows come back newest first.
func (h GetProductMovementsQueryHandler) Handle(
	ctx context.Context,
	query GetProductMovementsQuery,
) ([]GetProductMovementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, quantity_delta, movement_type, resulting_stock, created_at
		FROM stock_movements
		WHERE product_id = ?
		ORDER BY created_at DESC
	`, query.ProductID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]GetProductMovementsQueryResponse, 0)
	for rows.Next() {
		var m GetProductMovementsQueryResponse
		var id uuid.UUID
		var orderID uuid.NullUUID

		if err = rows.Scan(&id, &orderID, &m.QuantityDelta, &m.MovementType, &m.ResultingStock, &m.CreatedAt); err != nil {
			return nil, err
		}

		if m.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if orderID.Valid {
			oID, oErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if oErr != nil {
				return nil, oErr
			}
			m.OrderID = &oID
		}
		movements = append(movements, m)
	}

	return movements, rows.Err()
}
