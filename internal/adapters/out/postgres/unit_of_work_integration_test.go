package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/carrierrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/sessionrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{},
		&productrepo.ProductDTO{}, &productrepo.MovementDTO{},
		&sessionrepo.SessionDTO{}, &sessionrepo.SessionOrderDTO{}, &sessionrepo.PickItemDTO{},
		&sessionrepo.DeliveryDTO{}, &sessionrepo.ReturnItemDTO{}, &sessionrepo.SettlementDTO{},
		&sessionrepo.ReservationDTO{}, &sessionrepo.CounterDTO{},
		&carrierrepo.CarrierDTO{}, &carrierrepo.ZoneRateDTO{},
	))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`
		TRUNCATE TABLE orders, order_line_items, products, stock_movements,
		               sessions, session_orders, session_pick_items, session_deliveries,
		               session_return_items, session_settlements, session_reservations,
		               session_counters, carriers, carrier_zone_rates
	`).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.SessionRepository())
	suite.NotNil(uow1.CarrierRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

// TestUnitOfWork_PackingCommitsStockAndOrderTogether exercises the central
// consistency guarantee: the order status change, the stock decrement and the
// movement row land in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PackingCommitsStockAndOrderTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct := createTestProduct(10)
	testOrder := createTestOrder(testProduct.ID(), 3, order.InPreparation)

	suite.Require().NoError(uow.ProductRepository().Add(ctx, testProduct))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(testOrder.TransitionTo(order.ReadyToShip))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))

	locked, err := uow.ProductRepository().GetForUpdate(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.Decrement(3))

	orderID := testOrder.ID()
	movement, err := product.NewMovement(
		kernel.NewUUID(), locked.ID(), &orderID, -3, product.MovementOrderDecrement, locked.Stock(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProductRepository().AppendMovement(ctx, movement))
	suite.Require().NoError(uow.ProductRepository().Update(ctx, locked))

	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReadyToShip, retrievedOrder.Status())

	retrievedProduct, err := newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(7, retrievedProduct.Stock())

	hasMovement, err := newUow.ProductRepository().HasMovement(ctx, testOrder.ID(), product.MovementOrderDecrement)
	suite.Require().NoError(err)
	suite.True(hasMovement)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct := createTestProduct(10)
	testOrder := createTestOrder(testProduct.ID(), 3, order.Pending)

	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.ProductRepository().Add(ctx, testProduct))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	// Both are visible within the transaction.
	_, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	_, err = uow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().Error(err, "Product should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	product1 := createTestProduct(5)
	product2 := createTestProduct(5)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.ProductRepository().Add(ctx, product1))
	suite.Require().NoError(uow2.ProductRepository().Add(ctx, product2))

	_, err := uow1.ProductRepository().Get(ctx, product1.ID())
	suite.Require().NoError(err, "UOW1 should see its own product")

	_, err = uow1.ProductRepository().Get(ctx, product2.ID())
	suite.Require().Error(err, "UOW1 should not see the other transaction's product")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.ProductRepository().Get(ctx, product1.ID())
	suite.Require().NoError(err, "Committed product should persist")

	_, err = newUow.ProductRepository().Get(ctx, product2.ID())
	suite.Require().Error(err, "Rolled back product should not persist")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct := createTestProduct(5)

	// Without Begin, repository operations auto-commit.
	suite.Require().NoError(uow.ProductRepository().Add(ctx, testProduct))

	newUow := suite.factory.Create()
	retrieved, err := newUow.ProductRepository().Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())
}

// createTestProduct creates a product with the given stock for testing.
func createTestProduct(stock int) *product.Product {
	p, _ := product.NewProduct(
		kernel.NewUUID(),
		"Ceramic Mug",
		"SKU-"+kernel.NewUUID().String()[:8],
		stock,
		decimal.NewFromInt(100),
		decimal.NewFromInt(60),
	)
	return p
}

// createTestOrder creates an order of quantity units of the product, walked
// to the requested status.
func createTestOrder(productID kernel.UUID, quantity int, status order.Status) *order.Order {
	item, _ := order.NewLineItem(kernel.NewUUID(), productID, quantity, decimal.NewFromInt(100))
	o, _ := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.PaymentCash,
		decimal.NewFromInt(15),
		order.Recipient{Name: "Aye Chan", Phone: "+95 9 555 0101", Address: "12 Bogyoke Road", Zone: "yangon"},
		[]*order.LineItem{item},
	)

	for _, step := range []order.Status{order.Confirmed, order.InPreparation, order.ReadyToShip} {
		if o.Status() == status {
			break
		}
		_ = o.TransitionTo(step)
	}
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
