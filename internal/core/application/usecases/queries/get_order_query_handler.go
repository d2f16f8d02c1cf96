package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order retrieval.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no order
// exists with the requested identifier.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	var id uuid.UUID
	var customerID uuid.UUID
	var carrierID uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			customer_id,
			carrier_id,
			payment_method,
			shipping_cost,
			total_price,
			recipient_name,
			recipient_phone,
			recipient_address,
			recipient_zone,
			recipient_map_link,
			recipient_notes,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&id,
		&response.Status,
		&customerID,
		&carrierID,
		&response.PaymentMethod,
		&response.ShippingCost,
		&response.TotalPrice,
		&response.RecipientName,
		&response.RecipientPhone,
		&response.RecipientAddress,
		&response.RecipientZone,
		&response.RecipientMapLink,
		&response.RecipientNotes,
		&response.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if carrierID.Valid {
		cID, cErr := kernel.UUIDFromBytes(carrierID.UUID[:])
		if cErr != nil {
			return GetOrderQueryResponse{}, cErr
		}
		response.CarrierID = &cID
	}

	if response.LineItems, err = h.lineItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) lineItems(ctx context.Context, orderID kernel.UUID) ([]OrderLineItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, quantity, unit_price
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderLineItemResponse, 0)
	for rows.Next() {
		var item OrderLineItemResponse
		var productID uuid.UUID

		if err = rows.Scan(&productID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
