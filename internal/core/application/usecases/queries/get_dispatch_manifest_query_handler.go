package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDispatchManifestQueryHandler assembles the hand-off manifest of a
// dispatch session from the session row, its membership and the member orders.
type GetDispatchManifestQueryHandler struct {
	db *gorm.DB
}

// NewGetDispatchManifestQueryHandler creates a handler for manifest assembly.
func NewGetDispatchManifestQueryHandler(db *gorm.DB) GetDispatchManifestQueryHandler {
	return GetDispatchManifestQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the session
// does not exist.
func (h GetDispatchManifestQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchManifestQuery,
) (GetDispatchManifestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDispatchManifestQueryResponse{}, err
	}

	var response GetDispatchManifestQueryResponse
	var carrierName sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT s.code, c.name
		FROM sessions s
		LEFT JOIN carriers c ON c.id = s.carrier_id
		WHERE s.id = ?
	`, query.SessionID().String()).Row()

	err := row.Scan(&response.SessionCode, &carrierName)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDispatchManifestQueryResponse{}, errs.NewObjectNotFoundError("session", query.SessionID().String())
	}
	if err != nil {
		return GetDispatchManifestQueryResponse{}, err
	}
	response.CarrierName = carrierName.String

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.recipient_name,
			o.recipient_phone,
			o.recipient_address,
			o.recipient_zone,
			o.recipient_map_link,
			o.recipient_notes,
			o.payment_method,
			o.total_price,
			o.created_at,
			COALESCE(li.total_quantity, 0),
			COALESCE(li.items_summary, '')
		FROM session_orders so
		JOIN orders o ON o.id = so.order_id
		LEFT JOIN (
			SELECT
				i.order_id,
				SUM(i.quantity) AS total_quantity,
				STRING_AGG(i.quantity || ' x ' || p.name, ', ' ORDER BY p.name) AS items_summary
			FROM order_line_items i
			JOIN products p ON p.id = i.product_id
			GROUP BY i.order_id
		) li ON li.order_id = o.id
		WHERE so.session_id = ?
		ORDER BY o.recipient_zone, o.recipient_name
	`, query.SessionID().String()).Rows()
	if err != nil {
		return GetDispatchManifestQueryResponse{}, err
	}
	defer rows.Close()

	response.Rows = make([]ManifestRow, 0)
	for rows.Next() {
		var r ManifestRow
		var id uuid.UUID
		var totalPrice decimal.Decimal

		if err = rows.Scan(
			&id,
			&r.RecipientName,
			&r.RecipientPhone,
			&r.RecipientAddress,
			&r.RecipientZone,
			&r.RecipientMapLink,
			&r.RecipientNotes,
			&r.PaymentMethod,
			&totalPrice,
			&r.OrderDate,
			&r.TotalQuantity,
			&r.ItemsSummary,
		); err != nil {
			return GetDispatchManifestQueryResponse{}, err
		}

		if r.OrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetDispatchManifestQueryResponse{}, err
		}

		// The courier collects the full total for cash orders only.
		r.CODAmount = decimal.Zero
		if r.PaymentMethod == "cash" {
			r.CODAmount = totalPrice
		}
		response.Rows = append(response.Rows, r)
	}

	return response, rows.Err()
}
