package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// RecipientResponse mirrors RecipientRequest in read models.
type RecipientResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Zone    string `json:"zone"`
	MapLink string `json:"map_link,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// LineItemResponse is one ordered product position in a read model.
type LineItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse is the full order read model.
type OrderResponse struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	CustomerID    string             `json:"customer_id"`
	CarrierID     *string            `json:"carrier_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	ShippingCost  decimal.Decimal    `json:"shipping_cost"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
	Recipient     RecipientResponse  `json:"recipient"`
	LineItems     []LineItemResponse `json:"line_items"`
	CreatedAt     time.Time          `json:"created_at"`
}

func orderResponseFrom(r queries.GetOrderQueryResponse) OrderResponse {
	items := make([]LineItemResponse, len(r.LineItems))
	for i, item := range r.LineItems {
		items[i] = LineItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	var carrierID *string
	if r.CarrierID != nil {
		s := r.CarrierID.String()
		carrierID = &s
	}

	return OrderResponse{
		ID:            r.ID.String(),
		Status:        r.Status,
		CustomerID:    r.CustomerID.String(),
		CarrierID:     carrierID,
		PaymentMethod: r.PaymentMethod,
		ShippingCost:  r.ShippingCost,
		TotalPrice:    r.TotalPrice,
		Recipient: RecipientResponse{
			Name:    r.RecipientName,
			Phone:   r.RecipientPhone,
			Address: r.RecipientAddress,
			Zone:    r.RecipientZone,
			MapLink: r.RecipientMapLink,
			Notes:   r.RecipientNotes,
		},
		LineItems: items,
		CreatedAt: r.CreatedAt,
	}
}

// OrderSummaryResponse is one row of the order list.
type OrderSummaryResponse struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	RecipientName string          `json:"recipient_name"`
	RecipientZone string          `json:"recipient_zone"`
	CreatedAt     time.Time       `json:"created_at"`
}

func orderSummariesFrom(rows []queries.GetOrdersQueryResponse) []OrderSummaryResponse {
	response := make([]OrderSummaryResponse, len(rows))
	for i, r := range rows {
		response[i] = OrderSummaryResponse{
			ID:            r.ID.String(),
			Status:        r.Status,
			PaymentMethod: r.PaymentMethod,
			TotalPrice:    r.TotalPrice,
			RecipientName: r.RecipientName,
			RecipientZone: r.RecipientZone,
			CreatedAt:     r.CreatedAt,
		}
	}
	return response
}

// ProductResponse is the product read model.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Stock        int             `json:"stock"`
	InitialStock int             `json:"initial_stock"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
}

func productResponseFrom(r queries.GetProductQueryResponse) ProductResponse {
	return ProductResponse{
		ID:           r.ID.String(),
		Name:         r.Name,
		SKU:          r.SKU,
		Stock:        r.Stock,
		InitialStock: r.InitialStock,
		Price:        r.Price,
		Cost:         r.Cost,
	}
}

// MovementResponse is one stock movement audit trail row.
type MovementResponse struct {
	ID             string    `json:"id"`
	OrderID        *string   `json:"order_id,omitempty"`
	QuantityDelta  int       `json:"quantity_delta"`
	MovementType   string    `json:"movement_type"`
	ResultingStock int       `json:"resulting_stock"`
	CreatedAt      time.Time `json:"created_at"`
}

func movementsFrom(rows []queries.GetProductMovementsQueryResponse) []MovementResponse {
	response := make([]MovementResponse, len(rows))
	for i, r := range rows {
		var orderID *string
		if r.OrderID != nil {
			s := r.OrderID.String()
			orderID = &s
		}
		response[i] = MovementResponse{
			ID:             r.ID.String(),
			OrderID:        orderID,
			QuantityDelta:  r.QuantityDelta,
			MovementType:   r.MovementType,
			ResultingStock: r.ResultingStock,
			CreatedAt:      r.CreatedAt,
		}
	}
	return response
}

// ImportFailureResponse is one result row the import rejected.
type ImportFailureResponse struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// ImportDeliveryResultsResponse reports which result rows could not be
// applied; the failures list is empty when the whole batch applied.
type ImportDeliveryResultsResponse struct {
	Failures []ImportFailureResponse `json:"failures"`
}

func importDeliveryResultsResponseFrom(failures []commands.ImportFailure) ImportDeliveryResultsResponse {
	rows := make([]ImportFailureResponse, len(failures))
	for i, f := range failures {
		rows[i] = ImportFailureResponse{
			OrderID: f.OrderID.String(),
			Reason:  f.Reason,
		}
	}
	return ImportDeliveryResultsResponse{Failures: rows}
}

// PickItemResponse is one per-product pick tracker row.
type PickItemResponse struct {
	ProductID      string `json:"product_id"`
	QuantityNeeded int    `json:"quantity_needed"`
	QuantityPicked int    `json:"quantity_picked"`
}

// DeliveryResponse is one per-order delivery tracker row.
type DeliveryResponse struct {
	OrderID      string          `json:"order_id"`
	Result       string          `json:"result"`
	CODCollected decimal.Decimal `json:"cod_collected"`
}

// ReturnItemResponse is one return item resolution row.
type ReturnItemResponse struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	ProductID        string `json:"product_id"`
	OrderedQuantity  int    `json:"ordered_quantity"`
	AcceptedQuantity int    `json:"accepted_quantity"`
	RejectedQuantity int    `json:"rejected_quantity"`
	RejectionReason  string `json:"rejection_reason,omitempty"`
	Status           string `json:"status"`
}

// SettlementResponse is the recorded reconciliation of a settled dispatch
// session.
type SettlementResponse struct {
	TotalCODExpected     decimal.Decimal `json:"total_cod_expected"`
	TotalCODCollected    decimal.Decimal `json:"total_cod_collected"`
	CarrierFees          decimal.Decimal `json:"carrier_fees"`
	Discrepancy          decimal.Decimal `json:"discrepancy"`
	DiscrepancyConfirmed bool            `json:"discrepancy_confirmed"`
	Notes                string          `json:"notes,omitempty"`
}

// SessionResponse is the session read model. Child collections irrelevant to
// the session kind are empty; settlement is null until the session settles.
type SessionResponse struct {
	ID          string               `json:"id"`
	Kind        string               `json:"kind"`
	Code        string               `json:"code"`
	Status      string               `json:"status"`
	CarrierID   *string              `json:"carrier_id,omitempty"`
	OrderIDs    []string             `json:"order_ids"`
	PickItems   []PickItemResponse   `json:"pick_items,omitempty"`
	Deliveries  []DeliveryResponse   `json:"deliveries,omitempty"`
	ReturnItems []ReturnItemResponse `json:"return_items,omitempty"`
	Settlement  *SettlementResponse  `json:"settlement,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

func sessionResponseFrom(r queries.GetSessionQueryResponse) SessionResponse {
	orderIDs := make([]string, len(r.OrderIDs))
	for i, id := range r.OrderIDs {
		orderIDs[i] = id.String()
	}

	pickItems := make([]PickItemResponse, len(r.PickItems))
	for i, item := range r.PickItems {
		pickItems[i] = PickItemResponse{
			ProductID:      item.ProductID.String(),
			QuantityNeeded: item.QuantityNeeded,
			QuantityPicked: item.QuantityPicked,
		}
	}

	deliveries := make([]DeliveryResponse, len(r.Deliveries))
	for i, d := range r.Deliveries {
		deliveries[i] = DeliveryResponse{
			OrderID:      d.OrderID.String(),
			Result:       d.Result,
			CODCollected: d.CODCollected,
		}
	}

	returnItems := make([]ReturnItemResponse, len(r.ReturnItems))
	for i, item := range r.ReturnItems {
		returnItems[i] = ReturnItemResponse{
			ID:               item.ID.String(),
			OrderID:          item.OrderID.String(),
			ProductID:        item.ProductID.String(),
			OrderedQuantity:  item.OrderedQuantity,
			AcceptedQuantity: item.AcceptedQuantity,
			RejectedQuantity: item.RejectedQuantity,
			RejectionReason:  item.RejectionReason,
			Status:           item.Status,
		}
	}

	var carrierID *string
	if r.CarrierID != nil {
		s := r.CarrierID.String()
		carrierID = &s
	}

	var settlement *SettlementResponse
	if r.Settlement != nil {
		settlement = &SettlementResponse{
			TotalCODExpected:     r.Settlement.TotalCODExpected,
			TotalCODCollected:    r.Settlement.TotalCODCollected,
			CarrierFees:          r.Settlement.CarrierFees,
			Discrepancy:          r.Settlement.Discrepancy,
			DiscrepancyConfirmed: r.Settlement.DiscrepancyConfirmed,
			Notes:                r.Settlement.Notes,
		}
	}

	return SessionResponse{
		ID:          r.ID.String(),
		Kind:        r.Kind,
		Code:        r.Code,
		Status:      r.Status,
		CarrierID:   carrierID,
		OrderIDs:    orderIDs,
		PickItems:   pickItems,
		Deliveries:  deliveries,
		ReturnItems: returnItems,
		Settlement:  settlement,
		CreatedAt:   r.CreatedAt,
	}
}
