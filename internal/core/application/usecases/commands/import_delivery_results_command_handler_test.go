package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// dispatchedSessionFixture builds a dispatched session over the given orders
// and moves the orders to SHIPPED, the state they hold while the courier is
// out with them.
func dispatchedSessionFixture(t *testing.T, orders ...*order.Order) *session.Session {
	t.Helper()

	rate, err := carrier.NewZoneRate(kernel.NewUUID(), "yangon", decimal.NewFromInt(15))
	require.NoError(t, err)
	car, err := carrier.NewCarrier(kernel.NewUUID(), "Royal Express", []*carrier.ZoneRate{rate})
	require.NoError(t, err)

	sess, err := session.NewSession(kernel.NewUUID(), session.KindDispatch, "DISP-26082026-02", orders)
	require.NoError(t, err)
	require.NoError(t, sess.AssignCarrier(car.ID()))
	require.NoError(t, sess.Dispatch())
	for _, o := range orders {
		require.NoError(t, o.TransitionTo(order.Shipped))
	}
	return sess
}

func deliveryFor(t *testing.T, sess *session.Session, orderID kernel.UUID) *session.Delivery {
	t.Helper()

	for _, d := range sess.Deliveries() {
		if d.OrderID().IsEqual(orderID) {
			return d
		}
	}
	t.Fatalf("no delivery row for order %s", orderID)
	return nil
}

func TestImportDeliveryResultsCommandHandler_Handle_MixedOutcomes(t *testing.T) {
	ctx := t.Context()

	o1 := restoredOrder(t, order.ReadyToShip, kernel.NewUUID(), 2) // total 200
	o2 := restoredOrder(t, order.ReadyToShip, kernel.NewUUID(), 1)
	sess := dispatchedSessionFixture(t, o1, o2)

	cmd, err := commands.NewImportDeliveryResultsCommand(sess.ID(), []commands.DeliveryResultSpec{
		{OrderID: o1.ID(), Result: session.DeliveryDelivered, CODCollected: decimal.NewFromInt(200)},
		{OrderID: o2.ID(), Result: session.DeliveryFailed, CODCollected: decimal.Zero},
	})
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once()
	sessionRepo.On("Update", mock.Anything, sess).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o1.ID()).Return(o1, nil).Once()
	orderRepo.On("Update", mock.Anything, o1).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewImportDeliveryResultsCommandHandler(factory)
	failures, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Empty(t, failures)
	assert.Equal(t, order.Delivered, o1.Status())
	assert.Equal(t, order.Shipped, o2.Status())
	assert.Equal(t, session.StatusProcessing, sess.Status())
	assert.True(t, deliveryFor(t, sess, o1.ID()).CODCollected().Equal(decimal.NewFromInt(200)))
	assert.Equal(t, session.DeliveryFailed, deliveryFor(t, sess, o2.ID()).Result())
	orderRepo.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
}

func TestImportDeliveryResultsCommandHandler_Handle_BadRowsDoNotAbortBatch(t *testing.T) {
	ctx := t.Context()

	o1 := restoredOrder(t, order.ReadyToShip, kernel.NewUUID(), 2)
	o2 := restoredOrder(t, order.ReadyToShip, kernel.NewUUID(), 1)
	sess := dispatchedSessionFixture(t, o1, o2)
	// o2 was cancelled while the courier was already out with it.
	require.NoError(t, o2.TransitionTo(order.Cancelled))

	strangerID := kernel.NewUUID()
	cmd, err := commands.NewImportDeliveryResultsCommand(sess.ID(), []commands.DeliveryResultSpec{
		{OrderID: o1.ID(), Result: session.DeliveryDelivered, CODCollected: decimal.NewFromInt(200)},
		{OrderID: o2.ID(), Result: session.DeliveryDelivered, CODCollected: decimal.NewFromInt(100)},
		{OrderID: strangerID, Result: session.DeliveryDelivered, CODCollected: decimal.NewFromInt(50)},
	})
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once()
	sessionRepo.On("Update", mock.Anything, sess).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o1.ID()).Return(o1, nil).Once()
	orderRepo.On("Get", mock.Anything, o2.ID()).Return(o2, nil).Once()
	orderRepo.On("Update", mock.Anything, o1).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewImportDeliveryResultsCommandHandler(factory)
	failures, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, failures, 2)
	assert.True(t, failures[0].OrderID.IsEqual(o2.ID()))
	assert.Contains(t, failures[0].Reason, "invalid status transition")
	assert.True(t, failures[1].OrderID.IsEqual(strangerID))

	assert.Equal(t, order.Delivered, o1.Status())
	assert.Equal(t, order.Cancelled, o2.Status())
	assert.Equal(t, session.StatusProcessing, sess.Status())

	// The cancelled member's row is downgraded so no COD stays expected.
	d2 := deliveryFor(t, sess, o2.ID())
	assert.Equal(t, session.DeliveryFailed, d2.Result())
	assert.True(t, d2.CODCollected().IsZero())

	orderRepo.AssertNotCalled(t, "Update", mock.Anything, o2)
	uow.AssertExpectations(t)
}
