package http

import (
	"github.com/shopspring/decimal"
)

// RecipientRequest carries the delivery contact details of a new order.
type RecipientRequest struct {
	Name    string `json:"name"    validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Zone    string `json:"zone"    validate:"required"`
	MapLink string `json:"map_link"`
	Notes   string `json:"notes"`
}

// LineItemRequest is one ordered product position.
type LineItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerID    string            `json:"customer_id"    validate:"required,uuid"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card bank_transfer"`
	ShippingCost  decimal.Decimal   `json:"shipping_cost"`
	Recipient     RecipientRequest  `json:"recipient"      validate:"required"`
	LineItems     []LineItemRequest `json:"line_items"     validate:"required,min=1,dive"`
}

// ChangeOrderStatusRequest is the body of PATCH /orders/{id}/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required"`
	SKU          string          `json:"sku"           validate:"required"`
	InitialStock int             `json:"initial_stock" validate:"min=0"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
}

// ZoneRateRequest is one delivery zone fee of a carrier.
type ZoneRateRequest struct {
	Zone string          `json:"zone" validate:"required"`
	Fee  decimal.Decimal `json:"fee"`
}

// CreateCarrierRequest is the body of POST /carriers.
type CreateCarrierRequest struct {
	Name  string            `json:"name"  validate:"required"`
	Rates []ZoneRateRequest `json:"rates" validate:"required,min=1,dive"`
}

// CreateSessionRequest is the body of POST /warehouse/sessions and
// POST /returns/sessions.
type CreateSessionRequest struct {
	OrderIDs []string `json:"order_ids" validate:"required,min=1,dive,uuid"`
}

// CreateDispatchSessionRequest is the body of POST /settlements/dispatch-sessions.
// The carrier is optional at creation and may be assigned later, but must be
// set before dispatch.
type CreateDispatchSessionRequest struct {
	OrderIDs  []string `json:"order_ids"  validate:"required,min=1,dive,uuid"`
	CarrierID string   `json:"carrier_id" validate:"omitempty,uuid"`
}

// RecordPickRequest is the body of POST /warehouse/sessions/{id}/pick.
type RecordPickRequest struct {
	ProductID      string `json:"product_id"      validate:"required,uuid"`
	PickedQuantity int    `json:"picked_quantity" validate:"required,min=1"`
}

// CompletePackingRequest is the body of POST /warehouse/sessions/{id}/complete-packing.
type CompletePackingRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}

// DeliveryResultRequest is one courier-reported outcome row.
type DeliveryResultRequest struct {
	OrderID      string          `json:"order_id"      validate:"required,uuid"`
	Result       string          `json:"result"        validate:"required,oneof=delivered failed"`
	CODCollected decimal.Decimal `json:"cod_collected"`
}

// ImportDeliveryResultsRequest is the body of
// POST /settlements/dispatch-sessions/{id}/import.
type ImportDeliveryResultsRequest struct {
	Results []DeliveryResultRequest `json:"results" validate:"required,min=1,dive"`
}

// ProcessSettlementRequest is the body of
// POST /settlements/dispatch-sessions/{id}/process.
type ProcessSettlementRequest struct {
	DiscrepancyConfirmed bool   `json:"discrepancy_confirmed"`
	Notes                string `json:"notes"`
}

// ResolveReturnItemRequest is the body of
// PATCH /returns/sessions/{id}/items/{item_id}.
type ResolveReturnItemRequest struct {
	Status           string `json:"status"            validate:"required,oneof=accepted rejected partial"`
	AcceptedQuantity int    `json:"accepted_quantity" validate:"min=0"`
	RejectedQuantity int    `json:"rejected_quantity" validate:"min=0"`
	RejectionReason  string `json:"rejection_reason"`
}
