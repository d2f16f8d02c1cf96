package session_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderInStatus(t *testing.T, status order.Status, items ...*order.LineItem) *order.Order {
	t.Helper()
	if len(items) == 0 {
		li, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 2, decimal.NewFromInt(10))
		require.NoError(t, err)
		items = []*order.LineItem{li}
	}

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.PaymentCash,
		decimal.Zero, order.Recipient{Name: "Dana Cole", Zone: "downtown"}, items,
	)
	require.NoError(t, err)

	path := map[order.Status][]order.Status{
		order.Pending:       {},
		order.Confirmed:     {order.Confirmed},
		order.InPreparation: {order.Confirmed, order.InPreparation},
		order.ReadyToShip:   {order.Confirmed, order.InPreparation, order.ReadyToShip},
		order.Shipped:       {order.Confirmed, order.InPreparation, order.ReadyToShip, order.Shipped},
		order.Delivered:     {order.Confirmed, order.InPreparation, order.ReadyToShip, order.Shipped, order.Delivered},
	}
	for _, s := range path[status] {
		require.NoError(t, o.TransitionTo(s))
	}
	return o
}

func lineItem(t *testing.T, productID kernel.UUID, qty int) *order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(kernel.NewUUID(), productID, qty, decimal.NewFromInt(5))
	require.NoError(t, err)
	return li
}

func TestFormatCode(t *testing.T) {
	day := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)

	t.Run("picking uses three digits", func(t *testing.T) {
		code, err := session.FormatCode(session.KindPicking, day, 4)
		require.NoError(t, err)
		assert.Equal(t, "PREP-07032024-004", code)
	})

	t.Run("dispatch uses two digits", func(t *testing.T) {
		code, err := session.FormatCode(session.KindDispatch, day, 12)
		require.NoError(t, err)
		assert.Equal(t, "DISP-07032024-12", code)
	})

	t.Run("return prefix", func(t *testing.T) {
		code, err := session.FormatCode(session.KindReturn, day, 1)
		require.NoError(t, err)
		assert.Equal(t, "RET-07032024-001", code)
	})

	t.Run("rejects non-positive sequence", func(t *testing.T) {
		_, err := session.FormatCode(session.KindPicking, day, 0)
		require.Error(t, err)
	})
}

func TestKindEligibility(t *testing.T) {
	assert.True(t, session.KindPicking.IsEligibleSource(order.Confirmed))
	assert.False(t, session.KindPicking.IsEligibleSource(order.Pending))

	assert.True(t, session.KindDispatch.IsEligibleSource(order.ReadyToShip))
	assert.False(t, session.KindDispatch.IsEligibleSource(order.Confirmed))

	assert.True(t, session.KindReturn.IsEligibleSource(order.Delivered))
	assert.True(t, session.KindReturn.IsEligibleSource(order.Shipped))
	assert.False(t, session.KindReturn.IsEligibleSource(order.ReadyToShip))
}

func TestNewSession(t *testing.T) {
	t.Run("picking aggregates needed quantities per product", func(t *testing.T) {
		productA := kernel.NewUUID()
		productB := kernel.NewUUID()
		o1 := newOrderInStatus(t, order.Confirmed, lineItem(t, productA, 3))
		o2 := newOrderInStatus(t, order.Confirmed, lineItem(t, productA, 2), lineItem(t, productB, 1))

		s, err := session.NewSession(kernel.NewUUID(), session.KindPicking, "PREP-07032024-001", []*order.Order{o1, o2})
		require.NoError(t, err)

		require.Len(t, s.PickItems(), 2)
		byProduct := map[kernel.UUID]int{}
		for _, item := range s.PickItems() {
			byProduct[item.ProductID()] = item.QuantityNeeded()
		}
		assert.Equal(t, 5, byProduct[productA])
		assert.Equal(t, 1, byProduct[productB])
	})

	t.Run("dispatch builds pending deliveries", func(t *testing.T) {
		o := newOrderInStatus(t, order.ReadyToShip)
		s, err := session.NewSession(kernel.NewUUID(), session.KindDispatch, "DISP-07032024-01", []*order.Order{o})
		require.NoError(t, err)

		require.Len(t, s.Deliveries(), 1)
		assert.Equal(t, session.DeliveryPending, s.Deliveries()[0].Result())
	})

	t.Run("return builds pending items per line item", func(t *testing.T) {
		productID := kernel.NewUUID()
		o := newOrderInStatus(t, order.Delivered, lineItem(t, productID, 10))
		s, err := session.NewSession(kernel.NewUUID(), session.KindReturn, "RET-07032024-001", []*order.Order{o})
		require.NoError(t, err)

		require.Len(t, s.ReturnItems(), 1)
		item := s.ReturnItems()[0]
		assert.Equal(t, 10, item.OrderedQuantity())
		assert.Equal(t, session.ReturnItemPending, item.Status())
	})

	t.Run("ineligible order is rejected", func(t *testing.T) {
		o := newOrderInStatus(t, order.Pending)
		_, err := session.NewSession(kernel.NewUUID(), session.KindPicking, "PREP-07032024-001", []*order.Order{o})
		require.ErrorIs(t, err, session.ErrOrdersNotEligible)
	})

	t.Run("duplicate order is rejected", func(t *testing.T) {
		o := newOrderInStatus(t, order.Confirmed)
		_, err := session.NewSession(kernel.NewUUID(), session.KindPicking, "PREP-07032024-001", []*order.Order{o, o})
		require.Error(t, err)
	})

	t.Run("empty order set is rejected", func(t *testing.T) {
		_, err := session.NewSession(kernel.NewUUID(), session.KindPicking, "PREP-07032024-001", nil)
		require.Error(t, err)
	})
}

func TestPickingFlow(t *testing.T) {
	productID := kernel.NewUUID()
	o1 := newOrderInStatus(t, order.Confirmed, lineItem(t, productID, 3))
	o2 := newOrderInStatus(t, order.Confirmed, lineItem(t, productID, 2))
	s, err := session.NewSession(kernel.NewUUID(), session.KindPicking, "PREP-07032024-001", []*order.Order{o1, o2})
	require.NoError(t, err)

	t.Run("complete picking requires full picks", func(t *testing.T) {
		require.NoError(t, s.RecordPick(productID, 4))
		require.ErrorIs(t, s.CompletePicking(), session.ErrPickingIncomplete)
		assert.Equal(t, session.StatusCreated, s.Status())
	})

	t.Run("picking beyond needed is rejected", func(t *testing.T) {
		require.Error(t, s.RecordPick(productID, 6))
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		require.Error(t, s.RecordPick(kernel.NewUUID(), 1))
	})

	t.Run("completes into packing", func(t *testing.T) {
		require.NoError(t, s.RecordPick(productID, 5))
		require.NoError(t, s.CompletePicking())
		assert.Equal(t, session.StatusPacking, s.Status())
	})

	t.Run("packing every order completes the session", func(t *testing.T) {
		last, err := s.MarkOrderPacked(o1.ID())
		require.NoError(t, err)
		assert.False(t, last)

		_, err = s.MarkOrderPacked(o1.ID())
		require.Error(t, err, "double packing one order must fail")

		last, err = s.MarkOrderPacked(o2.ID())
		require.NoError(t, err)
		assert.True(t, last)
		assert.Equal(t, session.StatusCompleted, s.Status())
	})

	t.Run("terminal session rejects further packing", func(t *testing.T) {
		_, err := s.MarkOrderPacked(o1.ID())
		require.ErrorIs(t, err, session.ErrInvalidSessionTransition)
	})
}

func TestDispatchFlow(t *testing.T) {
	o1 := newOrderInStatus(t, order.ReadyToShip)
	o2 := newOrderInStatus(t, order.ReadyToShip)
	s, err := session.NewSession(kernel.NewUUID(), session.KindDispatch, "DISP-07032024-01", []*order.Order{o1, o2})
	require.NoError(t, err)

	require.NoError(t, s.AssignCarrier(kernel.NewUUID()))

	t.Run("results before dispatch are rejected", func(t *testing.T) {
		err := s.RecordDeliveryResult(o1.ID(), session.DeliveryDelivered, decimal.NewFromInt(25))
		require.ErrorIs(t, err, session.ErrInvalidSessionTransition)
	})

	require.NoError(t, s.Dispatch())
	assert.Equal(t, session.StatusDispatched, s.Status())

	t.Run("records per-order results", func(t *testing.T) {
		require.NoError(t, s.RecordDeliveryResult(o1.ID(), session.DeliveryDelivered, decimal.NewFromInt(25)))
		require.NoError(t, s.RecordDeliveryResult(o2.ID(), session.DeliveryFailed, decimal.Zero))
	})

	t.Run("non-member order is rejected", func(t *testing.T) {
		err := s.RecordDeliveryResult(kernel.NewUUID(), session.DeliveryDelivered, decimal.Zero)
		require.ErrorIs(t, err, session.ErrOrderNotInSession)
	})

	require.NoError(t, s.BeginProcessing())

	t.Run("unconfirmed discrepancy blocks settling", func(t *testing.T) {
		settlement, err := session.NewSettlement(
			s.ID(),
			decimal.NewFromInt(30), decimal.NewFromInt(25), decimal.NewFromInt(5),
			false, "",
		)
		require.NoError(t, err)

		require.ErrorIs(t, s.Settle(settlement), session.ErrUnconfirmedDiscrepancy)
		assert.Equal(t, session.StatusProcessing, s.Status())
	})

	t.Run("confirmed discrepancy settles", func(t *testing.T) {
		settlement, err := session.NewSettlement(
			s.ID(),
			decimal.NewFromInt(30), decimal.NewFromInt(25), decimal.NewFromInt(5),
			true, "driver shortage acknowledged",
		)
		require.NoError(t, err)

		require.NoError(t, s.Settle(settlement))
		assert.Equal(t, session.StatusSettled, s.Status())
		require.NotNil(t, s.Settlement())
		assert.True(t, s.Settlement().Discrepancy().Equal(decimal.NewFromInt(-5)))
	})
}

func TestReturnFlow(t *testing.T) {
	productID := kernel.NewUUID()
	o := newOrderInStatus(t, order.Delivered, lineItem(t, productID, 10))
	s, err := session.NewSession(kernel.NewUUID(), session.KindReturn, "RET-07032024-001", []*order.Order{o})
	require.NoError(t, err)
	item := s.ReturnItems()[0]

	t.Run("quantities exceeding ordered are rejected", func(t *testing.T) {
		err := s.ResolveReturnItem(item.ID(), session.ReturnItemPartial, 7, 4, "damaged box")
		require.ErrorIs(t, err, session.ErrQuantityExceedsOrdered)
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		err := s.ResolveReturnItem(item.ID(), session.ReturnItemPartial, 6, 4, "")
		require.ErrorIs(t, err, session.ErrRejectionReasonIsRequired)
	})

	t.Run("partial resolution", func(t *testing.T) {
		require.NoError(t, s.ResolveReturnItem(item.ID(), session.ReturnItemPartial, 6, 4, "scratched"))
		assert.Equal(t, 6, item.AcceptedQuantity())
		assert.Equal(t, 4, item.RejectedQuantity())
		assert.Equal(t, session.ReturnItemPartial, item.Status())
	})

	t.Run("unknown item is rejected", func(t *testing.T) {
		err := s.ResolveReturnItem(kernel.NewUUID(), session.ReturnItemAccepted, 1, 0, "")
		require.ErrorIs(t, err, session.ErrReturnItemNotFound)
	})

	t.Run("complete is terminal", func(t *testing.T) {
		require.NoError(t, s.CompleteReturn())
		assert.Equal(t, session.StatusCompleted, s.Status())

		err := s.ResolveReturnItem(item.ID(), session.ReturnItemAccepted, 1, 0, "")
		require.ErrorIs(t, err, session.ErrInvalidSessionTransition)
	})
}

func TestSessionCancel(t *testing.T) {
	t.Run("created sessions cancel for every kind", func(t *testing.T) {
		o := newOrderInStatus(t, order.Confirmed)
		s, err := session.NewSession(kernel.NewUUID(), session.KindPicking, "PREP-07032024-001", []*order.Order{o})
		require.NoError(t, err)

		require.NoError(t, s.Cancel())
		assert.Equal(t, session.StatusCancelled, s.Status())
		assert.True(t, s.IsTerminal())
	})

	t.Run("dispatched dispatch session cancels", func(t *testing.T) {
		o := newOrderInStatus(t, order.ReadyToShip)
		s, err := session.NewSession(kernel.NewUUID(), session.KindDispatch, "DISP-07032024-01", []*order.Order{o})
		require.NoError(t, err)
		require.NoError(t, s.Dispatch())

		require.NoError(t, s.Cancel())
		assert.Equal(t, session.StatusCancelled, s.Status())
	})

	t.Run("processing dispatch session cannot cancel", func(t *testing.T) {
		o := newOrderInStatus(t, order.ReadyToShip)
		s, err := session.NewSession(kernel.NewUUID(), session.KindDispatch, "DISP-07032024-02", []*order.Order{o})
		require.NoError(t, err)
		require.NoError(t, s.Dispatch())
		require.NoError(t, s.BeginProcessing())

		require.ErrorIs(t, s.Cancel(), session.ErrInvalidSessionTransition)
	})

	t.Run("cancel is not repeatable", func(t *testing.T) {
		o := newOrderInStatus(t, order.Confirmed)
		s, err := session.NewSession(kernel.NewUUID(), session.KindPicking, "PREP-07032024-002", []*order.Order{o})
		require.NoError(t, err)
		require.NoError(t, s.Cancel())
		require.ErrorIs(t, s.Cancel(), session.ErrInvalidSessionTransition)
	})
}
