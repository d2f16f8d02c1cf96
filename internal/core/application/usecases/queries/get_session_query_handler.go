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

// GetSessionQueryHandler retrieves one session read model with its children.
type GetSessionQueryHandler struct {
	db *gorm.DB
}

// NewGetSessionQueryHandler creates a handler for single-session retrieval.
func NewGetSessionQueryHandler(db *gorm.DB) GetSessionQueryHandler {
	return GetSessionQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no session
// exists with the requested identifier.
func (h GetSessionQueryHandler) Handle(ctx context.Context, query GetSessionQuery) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	var response GetSessionQueryResponse
	var id uuid.UUID
	var carrierID uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, kind, code, status, carrier_id, created_at
		FROM sessions
		WHERE id = ?
	`, query.SessionID().String()).Row()

	err := row.Scan(&id, &response.Kind, &response.Code, &response.Status, &carrierID, &response.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetSessionQueryResponse{}, errs.NewObjectNotFoundError("session", query.SessionID().String())
	}
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetSessionQueryResponse{}, err
	}
	if carrierID.Valid {
		cID, cErr := kernel.UUIDFromBytes(carrierID.UUID[:])
		if cErr != nil {
			return GetSessionQueryResponse{}, cErr
		}
		response.CarrierID = &cID
	}

	sessionID := query.SessionID()
	if response.OrderIDs, err = h.memberOrders(ctx, sessionID); err != nil {
		return GetSessionQueryResponse{}, err
	}
	if response.PickItems, err = h.pickItems(ctx, sessionID); err != nil {
		return GetSessionQueryResponse{}, err
	}
	if response.Deliveries, err = h.deliveries(ctx, sessionID); err != nil {
		return GetSessionQueryResponse{}, err
	}
	if response.ReturnItems, err = h.returnItems(ctx, sessionID); err != nil {
		return GetSessionQueryResponse{}, err
	}
	if response.Settlement, err = h.settlement(ctx, sessionID); err != nil {
		return GetSessionQueryResponse{}, err
	}

	return response, nil
}

func (h GetSessionQueryHandler) memberOrders(ctx context.Context, sessionID kernel.UUID) ([]kernel.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT order_id FROM session_orders WHERE session_id = ?
	`, sessionID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (h GetSessionQueryHandler) pickItems(ctx context.Context, sessionID kernel.UUID) ([]SessionPickItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, quantity_needed, quantity_picked
		FROM session_pick_items
		WHERE session_id = ?
	`, sessionID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]SessionPickItemResponse, 0)
	for rows.Next() {
		var item SessionPickItemResponse
		var productID uuid.UUID
		if err = rows.Scan(&productID, &item.QuantityNeeded, &item.QuantityPicked); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetSessionQueryHandler) deliveries(ctx context.Context, sessionID kernel.UUID) ([]SessionDeliveryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT order_id, result, cod_collected
		FROM session_deliveries
		WHERE session_id = ?
	`, sessionID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]SessionDeliveryResponse, 0)
	for rows.Next() {
		var d SessionDeliveryResponse
		var orderID uuid.UUID
		if err = rows.Scan(&orderID, &d.Result, &d.CODCollected); err != nil {
			return nil, err
		}
		if d.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (h GetSessionQueryHandler) returnItems(ctx context.Context, sessionID kernel.UUID) ([]SessionReturnItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, product_id, ordered_quantity, accepted_quantity,
		       rejected_quantity, rejection_reason, status
		FROM session_return_items
		WHERE session_id = ?
	`, sessionID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]SessionReturnItemResponse, 0)
	for rows.Next() {
		var item SessionReturnItemResponse
		var id, orderID, productID uuid.UUID
		if err = rows.Scan(
			&id, &orderID, &productID,
			&item.OrderedQuantity, &item.AcceptedQuantity, &item.RejectedQuantity,
			&item.RejectionReason, &item.Status,
		); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetSessionQueryHandler) settlement(ctx context.Context, sessionID kernel.UUID) (*SessionSettlementResponse, error) {
	var s SessionSettlementResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT total_cod_expected, total_cod_collected, carrier_fees,
		       discrepancy, discrepancy_confirmed, notes
		FROM session_settlements
		WHERE session_id = ?
	`, sessionID.String()).Row()

	err := row.Scan(
		&s.TotalCODExpected, &s.TotalCODCollected, &s.CarrierFees,
		&s.Discrepancy, &s.DiscrepancyConfirmed, &s.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
