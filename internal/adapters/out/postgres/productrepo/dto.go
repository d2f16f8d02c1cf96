// Package productrepo provides data transfer objects and mapping functions
// for product persistence and the append-only stock movement trail.
package productrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product
// aggregates. Stock is the only column that changes after creation.
type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	SKU          string `gorm:"column:sku;uniqueIndex"`
	Stock        int
	InitialStock int
	Price        decimal.Decimal `gorm:"type:numeric"`
	Cost         decimal.Decimal `gorm:"type:numeric"`
}

// TableName overrides GORM's default naming convention to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// MovementDTO represents one immutable stock movement audit row. Rows are
// inserted and read, never updated or deleted.
type MovementDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID  `gorm:"type:uuid;index"`
	OrderID        *uuid.UUID `gorm:"type:uuid;index"`
	QuantityDelta  int
	MovementType   string `gorm:"index"`
	ResultingStock int
	CreatedAt      time.Time
}

// TableName overrides GORM's default naming convention to use "stock_movements".
func (MovementDTO) TableName() string {
	return "stock_movements"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID().Bytes(),
		Name:         p.Name(),
		SKU:          p.SKU(),
		Stock:        p.Stock(),
		InitialStock: p.InitialStock(),
		Price:        p.Price(),
		Cost:         p.Cost(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.SKU, dto.Stock, dto.InitialStock, dto.Price, dto.Cost)
}

// movementFromDomain converts a movement to its database representation.
func movementFromDomain(m *product.Movement) MovementDTO {
	var orderID *uuid.UUID
	if id := m.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return MovementDTO{
		ID:             m.ID().Bytes(),
		ProductID:      m.ProductID().Bytes(),
		OrderID:        orderID,
		QuantityDelta:  m.QuantityDelta(),
		MovementType:   string(m.Type()),
		ResultingStock: m.ResultingStock(),
		CreatedAt:      m.CreatedAt(),
	}
}
