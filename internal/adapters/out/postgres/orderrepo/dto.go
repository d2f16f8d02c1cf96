// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate spans two tables: the order row and its
// immutable line item children.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and payment method are stored in their wire representation so read
// models can filter and render them without decoding.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status        string     `gorm:"index"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	CarrierID     *uuid.UUID `gorm:"type:uuid;index"`
	PaymentMethod string
	ShippingCost  decimal.Decimal `gorm:"type:numeric"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric"`
	Recipient     RecipientDTO    `gorm:"embedded;embeddedPrefix:recipient_"`
	LineItems     []LineItemDTO   `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt     time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// RecipientDTO represents the embedded delivery recipient within the order
// table. The zone drives carrier fee lookup and manifest grouping.
type RecipientDTO struct {
	Name    string
	Phone   string
	Address string
	Zone    string `gorm:"index"`
	MapLink string
	Notes   string
}

// LineItemDTO represents one ordered product line. Line items are fixed at
// order creation and never updated.
type LineItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric"`
}

// TableName overrides GORM's default naming convention to use "order_line_items".
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database
// representation, including the line item child rows.
func fromDomain(o *order.Order) OrderDTO {
	var carrierID *uuid.UUID
	if id := o.CarrierID(); id != nil {
		raw := id.Bytes()
		carrierID = &raw
	}

	lineItems := make([]LineItemDTO, 0, len(o.LineItems()))
	for _, li := range o.LineItems() {
		lineItems = append(lineItems, LineItemDTO{
			ID:        li.ID().Bytes(),
			OrderID:   o.ID().Bytes(),
			ProductID: li.ProductID().Bytes(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		Status:        o.Status().String(),
		CustomerID:    o.CustomerID().Bytes(),
		CarrierID:     carrierID,
		PaymentMethod: string(o.PaymentMethod()),
		ShippingCost:  o.ShippingCost(),
		TotalPrice:    o.TotalPrice(),
		Recipient: RecipientDTO{
			Name:    o.Recipient().Name,
			Phone:   o.Recipient().Phone,
			Address: o.Recipient().Address,
			Zone:    o.Recipient().Zone,
			MapLink: o.Recipient().MapLink,
			Notes:   o.Recipient().Notes,
		},
		LineItems: lineItems,
		CreatedAt: o.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, preserving status, carrier assignment and total.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var carrierID *kernel.UUID
	if dto.CarrierID != nil {
		cID, carrierErr := kernel.UUIDFromBytes((*dto.CarrierID)[:])
		if carrierErr != nil {
			return nil, carrierErr
		}

		carrierID = &cID
	}

	lineItems := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		liID, liErr := kernel.UUIDFromBytes(li.ID[:])
		if liErr != nil {
			return nil, liErr
		}
		productID, liErr := kernel.UUIDFromBytes(li.ProductID[:])
		if liErr != nil {
			return nil, liErr
		}

		item, liErr := order.NewLineItem(liID, productID, li.Quantity, li.UnitPrice)
		if liErr != nil {
			return nil, liErr
		}
		lineItems = append(lineItems, item)
	}

	return order.RestoreOrder(
		id,
		status,
		customerID,
		carrierID,
		order.PaymentMethod(dto.PaymentMethod),
		dto.ShippingCost,
		dto.TotalPrice,
		order.Recipient{
			Name:    dto.Recipient.Name,
			Phone:   dto.Recipient.Phone,
			Address: dto.Recipient.Address,
			Zone:    dto.Recipient.Zone,
			MapLink: dto.Recipient.MapLink,
			Notes:   dto.Recipient.Notes,
		},
		lineItems,
		dto.CreatedAt,
	)
}
