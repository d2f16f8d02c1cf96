package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLineItem(t *testing.T, quantity int, unitPrice string) *order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), quantity, decimal.RequireFromString(unitPrice))
	require.NoError(t, err)
	return li
}

func newTestOrder(t *testing.T, items ...*order.LineItem) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []*order.LineItem{newTestLineItem(t, 2, "10.50")}
	}
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.PaymentCash,
		decimal.RequireFromString("5.00"),
		order.Recipient{Name: "Jordan Smith", Phone: "+15550100", Address: "12 Pier Rd", Zone: "downtown"},
		items,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts pending with derived total", func(t *testing.T) {
		o := newTestOrder(t, newTestLineItem(t, 2, "10.50"), newTestLineItem(t, 1, "4.00"))

		assert.Equal(t, order.Pending, o.Status())
		// 2*10.50 + 4.00 + 5.00 shipping
		assert.True(t, o.TotalPrice().Equal(decimal.RequireFromString("30.00")))
		assert.Nil(t, o.CarrierID())
	})

	t.Run("requires line items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.PaymentCard,
			decimal.Zero, order.Recipient{Name: "A"}, nil,
		)
		require.ErrorIs(t, err, order.ErrLineItemsAreRequired)
	})

	t.Run("requires recipient name", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.PaymentCard,
			decimal.Zero, order.Recipient{}, []*order.LineItem{newTestLineItem(t, 1, "1.00")},
		)
		require.ErrorIs(t, err, order.ErrRecipientIsRequired)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), order.PaymentMethod("barter"),
			decimal.Zero, order.Recipient{Name: "A"}, []*order.LineItem{newTestLineItem(t, 1, "1.00")},
		)
		require.Error(t, err)
	})
}

func TestNewLineItem_Validation(t *testing.T) {
	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 0, decimal.NewFromInt(1))
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 1, decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestOrderTransitionTo(t *testing.T) {
	t.Run("walks the happy path", func(t *testing.T) {
		o := newTestOrder(t)

		for _, target := range []order.Status{
			order.Confirmed, order.InPreparation, order.ReadyToShip, order.Shipped, order.Delivered,
		} {
			require.NoError(t, o.TransitionTo(target))
			assert.Equal(t, target, o.Status())
		}
	})

	t.Run("skipping an edge leaves status unchanged", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.TransitionTo(order.Shipped)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("direct request to Returned is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(order.Confirmed))

		err := o.TransitionTo(order.Returned)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(order.Cancelled))

		err := o.TransitionTo(order.Cancelled)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrderMarkReturned(t *testing.T) {
	t.Run("allowed from delivered", func(t *testing.T) {
		o := newTestOrder(t)
		for _, target := range []order.Status{order.Confirmed, order.InPreparation, order.ReadyToShip, order.Shipped, order.Delivered} {
			require.NoError(t, o.TransitionTo(target))
		}

		require.NoError(t, o.MarkReturned())
		assert.Equal(t, order.Returned, o.Status())
	})

	t.Run("rejected from pending", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.MarkReturned(), order.ErrInvalidTransition)
	})
}

func TestOrderResetToReadyToShip(t *testing.T) {
	o := newTestOrder(t)
	for _, target := range []order.Status{order.Confirmed, order.InPreparation, order.ReadyToShip, order.Shipped} {
		require.NoError(t, o.TransitionTo(target))
	}

	require.NoError(t, o.ResetToReadyToShip())
	assert.Equal(t, order.ReadyToShip, o.Status())

	// only valid from Shipped
	require.ErrorIs(t, o.ResetToReadyToShip(), order.ErrInvalidTransition)
}

func TestOrderQuantityOf(t *testing.T) {
	productID := kernel.NewUUID()
	li1, err := order.NewLineItem(kernel.NewUUID(), productID, 3, decimal.NewFromInt(2))
	require.NoError(t, err)
	li2, err := order.NewLineItem(kernel.NewUUID(), productID, 4, decimal.NewFromInt(2))
	require.NoError(t, err)
	o := newTestOrder(t, li1, li2)

	assert.Equal(t, 7, o.QuantityOf(productID))
	assert.Equal(t, 0, o.QuantityOf(kernel.NewUUID()))
}

func TestRestoreOrder(t *testing.T) {
	original := newTestOrder(t)
	require.NoError(t, original.TransitionTo(order.Confirmed))
	carrierID := kernel.NewUUID()
	require.NoError(t, original.AssignCarrier(carrierID))

	restored, err := order.RestoreOrder(
		original.ID(),
		original.Status(),
		original.CustomerID(),
		original.CarrierID(),
		original.PaymentMethod(),
		original.ShippingCost(),
		original.TotalPrice(),
		original.Recipient(),
		original.LineItems(),
		original.CreatedAt(),
	)
	require.NoError(t, err)

	assert.True(t, restored.IsEqual(original))
	assert.Equal(t, order.Confirmed, restored.Status())
	assert.True(t, restored.TotalPrice().Equal(original.TotalPrice()))
	require.NotNil(t, restored.CarrierID())
	assert.True(t, restored.CarrierID().IsEqual(carrierID))
}

func TestOrderValidate(t *testing.T) {
	var o order.Order
	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.NoError(t, newTestOrder(t).Validate())
}

func TestPaymentMethodIsCOD(t *testing.T) {
	assert.True(t, order.PaymentCash.IsCOD())
	assert.False(t, order.PaymentCard.IsCOD())
	assert.False(t, order.PaymentBankTransfer.IsCOD())
}
