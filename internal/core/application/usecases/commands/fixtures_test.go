package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func restoredOrder(t *testing.T, status order.Status, productID kernel.UUID, qty int) *order.Order {
	t.Helper()

	li, err := order.NewLineItem(kernel.NewUUID(), productID, qty, decimal.NewFromInt(100))
	require.NoError(t, err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		status,
		kernel.NewUUID(),
		nil,
		order.PaymentCash,
		decimal.Zero,
		decimal.NewFromInt(int64(qty)*100),
		order.Recipient{Name: "Moe Moe", Zone: "yangon"},
		[]*order.LineItem{li},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func restoredProduct(t *testing.T, stock int) *product.Product {
	t.Helper()

	p, err := product.RestoreProduct(
		kernel.NewUUID(), "Widget", "WID-1", stock, stock,
		decimal.NewFromInt(100), decimal.NewFromInt(60),
	)
	require.NoError(t, err)
	return p
}
