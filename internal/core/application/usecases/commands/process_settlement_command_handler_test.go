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

// processingFixture builds a dispatch session in processing stage with one
// delivered cash order and its carrier.
func processingFixture(t *testing.T, codCollected int64) (*session.Session, *order.Order, *carrier.Carrier) {
	t.Helper()

	rate, err := carrier.NewZoneRate(kernel.NewUUID(), "yangon", decimal.NewFromInt(15))
	require.NoError(t, err)
	car, err := carrier.NewCarrier(kernel.NewUUID(), "Royal Express", []*carrier.ZoneRate{rate})
	require.NoError(t, err)

	o := restoredOrder(t, order.ReadyToShip, kernel.NewUUID(), 2) // total 200, zone yangon

	sess, err := session.NewSession(kernel.NewUUID(), session.KindDispatch, "DISP-26082026-01", []*order.Order{o})
	require.NoError(t, err)
	require.NoError(t, sess.AssignCarrier(car.ID()))
	require.NoError(t, sess.Dispatch())
	require.NoError(t, sess.RecordDeliveryResult(o.ID(), session.DeliveryDelivered, decimal.NewFromInt(codCollected)))
	require.NoError(t, sess.BeginProcessing())
	return sess, o, car
}

func TestProcessSettlementCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sess, o, car := processingFixture(t, 200)

	cmd, err := commands.NewProcessSettlementCommand(sess.ID(), false, "")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once()
	sessionRepo.On("ReleaseOrders", mock.Anything, sess.ID()).Return(nil).Once()
	sessionRepo.On("Update", mock.Anything, sess).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetMany", mock.Anything, sess.MemberOrderIDs()).Return([]*order.Order{o}, nil).Once()

	carrierRepo := new(MockCarrierRepository)
	carrierRepo.On("Get", mock.Anything, car.ID()).Return(car, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CarrierRepository").Return(carrierRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessSettlementCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, session.StatusSettled, sess.Status())
	settlement := sess.Settlement()
	require.NotNil(t, settlement)
	assert.True(t, settlement.TotalCODExpected().Equal(decimal.NewFromInt(200)))
	assert.True(t, settlement.CarrierFees().Equal(decimal.NewFromInt(15)))
	assert.True(t, settlement.Discrepancy().IsZero())
	sessionRepo.AssertExpectations(t)
}

func TestProcessSettlementCommandHandler_Handle_UnconfirmedDiscrepancy(t *testing.T) {
	ctx := t.Context()
	sess, o, car := processingFixture(t, 180)

	cmd, err := commands.NewProcessSettlementCommand(sess.ID(), false, "")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetMany", mock.Anything, sess.MemberOrderIDs()).Return([]*order.Order{o}, nil).Once()

	carrierRepo := new(MockCarrierRepository)
	carrierRepo.On("Get", mock.Anything, car.ID()).Return(car, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CarrierRepository").Return(carrierRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessSettlementCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, session.ErrUnconfirmedDiscrepancy)
	assert.Equal(t, session.StatusProcessing, sess.Status())
	sessionRepo.AssertNotCalled(t, "ReleaseOrders", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestProcessSettlementCommandHandler_Handle_ConfirmedDiscrepancy(t *testing.T) {
	ctx := t.Context()
	sess, o, car := processingFixture(t, 180)

	cmd, err := commands.NewProcessSettlementCommand(sess.ID(), true, "courier shortfall")
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Get", mock.Anything, sess.ID()).Return(sess, nil).Once()
	sessionRepo.On("ReleaseOrders", mock.Anything, sess.ID()).Return(nil).Once()
	sessionRepo.On("Update", mock.Anything, sess).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetMany", mock.Anything, sess.MemberOrderIDs()).Return([]*order.Order{o}, nil).Once()

	carrierRepo := new(MockCarrierRepository)
	carrierRepo.On("Get", mock.Anything, car.ID()).Return(car, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessionRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CarrierRepository").Return(carrierRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewProcessSettlementCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, sess.Settlement())
	assert.True(t, sess.Settlement().Discrepancy().Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, "courier shortfall", sess.Settlement().Notes())
}
