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

// GetProductQueryHandler retrieves one product read model from the database.
type GetProductQueryHandler struct {
	db *gorm.DB
}

// NewGetProductQueryHandler creates a handler for single-product retrieval.
func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no product
// exists with the requested identifier.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (GetProductQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductQueryResponse{}, err
	}

	var response GetProductQueryResponse
	var id uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, name, sku, stock, initial_stock, price, cost
		FROM products
		WHERE id = ?
	`, query.ProductID().String()).Row()

	err := row.Scan(
		&id,
		&response.Name,
		&response.SKU,
		&response.Stock,
		&response.InitialStock,
		&response.Price,
		&response.Cost,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetProductQueryResponse{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}
	if err != nil {
		return GetProductQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetProductQueryResponse{}, err
	}
	return response, nil
}
