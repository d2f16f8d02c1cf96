package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStatusCommandHandler_Handle_PackingEdgeDecrementsStock(t *testing.T) {
	ctx := t.Context()

	p := restoredProduct(t, 10)
	o := restoredOrder(t, order.InPreparation, p.ID(), 3)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.ReadyToShip)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("HasMovement", mock.Anything, o.ID(), product.MovementOrderDecrement).Return(false, nil).Once()
	productRepo.On("GetForUpdate", mock.Anything, p.ID()).Return(p, nil).Once()
	productRepo.On("AppendMovement", mock.Anything, mock.AnythingOfType("*product.Movement")).Return(nil).Once()
	productRepo.On("Update", mock.Anything, p).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.ReadyToShip, o.Status())
	assert.Equal(t, 7, p.Stock())
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CancelRestoresDecrementedStock(t *testing.T) {
	ctx := t.Context()

	p := restoredProduct(t, 7)
	o := restoredOrder(t, order.ReadyToShip, p.ID(), 3)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("HasMovement", mock.Anything, o.ID(), product.MovementOrderDecrement).Return(true, nil).Once()
	productRepo.On("HasMovement", mock.Anything, o.ID(), product.MovementOrderRestoreCancel).Return(false, nil).Once()
	productRepo.On("GetForUpdate", mock.Anything, p.ID()).Return(p, nil).Once()
	productRepo.On("AppendMovement", mock.Anything, mock.AnythingOfType("*product.Movement")).Return(nil).Once()
	productRepo.On("Update", mock.Anything, p).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, 10, p.Stock())
	productRepo.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CancelBeforeDecrementTouchesNothing(t *testing.T) {
	ctx := t.Context()

	p := restoredProduct(t, 10)
	o := restoredOrder(t, order.Pending, p.ID(), 3)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("HasMovement", mock.Anything, o.ID(), product.MovementOrderDecrement).Return(false, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, 10, p.Stock())
	productRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "AppendMovement", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()

	p := restoredProduct(t, 10)
	o := restoredOrder(t, order.Pending, p.ID(), 3)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Delivered)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Pending, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestChangeOrderStatusCommandHandler_Handle_InsufficientStockAborts(t *testing.T) {
	ctx := t.Context()

	p := restoredProduct(t, 2)
	o := restoredOrder(t, order.InPreparation, p.ID(), 3)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.ReadyToShip)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("HasMovement", mock.Anything, o.ID(), product.MovementOrderDecrement).Return(false, nil).Once()
	productRepo.On("GetForUpdate", mock.Anything, p.ID()).Return(p, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProductRepository").Return(productRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, 2, p.Stock())
	uow.AssertNotCalled(t, "Commit", ctx)
}
