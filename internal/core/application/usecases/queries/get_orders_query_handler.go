package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists order summaries for monitoring and for building
// session candidate lists.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are newest first.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT id, status, payment_method, total_price, recipient_name, recipient_zone, created_at
		FROM orders
	`

	var rows *sql.Rows
	var err error
	if query.Status() != "" {
		rows, err = h.db.WithContext(ctx).
			Raw(baseQuery+` WHERE status = ? ORDER BY created_at DESC`, query.Status()).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).
			Raw(baseQuery + ` ORDER BY created_at DESC`).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var o GetOrdersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id, &o.Status, &o.PaymentMethod, &o.TotalPrice,
			&o.RecipientName, &o.RecipientZone, &o.CreatedAt,
		); err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
