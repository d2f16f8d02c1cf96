package http

import (
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server exposes the fulfillment use cases over HTTP.
// It coordinates between HTTP handlers and application use cases; all
// business rules live behind the command and query handlers.
type Server struct {
	storeID string

	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	changeOrderStatusHandler     commands.ChangeOrderStatusCommandHandler
	deleteOrderHandler           commands.DeleteOrderCommandHandler
	createProductHandler         commands.CreateProductCommandHandler
	createCarrierHandler         commands.CreateCarrierCommandHandler
	createSessionHandler         commands.CreateSessionCommandHandler
	recordPickHandler            commands.RecordPickCommandHandler
	completePickingHandler       commands.CompletePickingCommandHandler
	completePackingHandler       commands.CompletePackingCommandHandler
	dispatchSessionHandler       commands.DispatchSessionCommandHandler
	importDeliveryResultsHandler commands.ImportDeliveryResultsCommandHandler
	processSettlementHandler     commands.ProcessSettlementCommandHandler
	resolveReturnItemHandler     commands.ResolveReturnItemCommandHandler
	completeReturnHandler        commands.CompleteReturnSessionCommandHandler
	cancelSessionHandler         commands.CancelSessionCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getOrdersHandler           queries.GetOrdersQueryHandler
	getProductHandler          queries.GetProductQueryHandler
	getProductMovementsHandler queries.GetProductMovementsQueryHandler
	getSessionHandler          queries.GetSessionQueryHandler
	getDispatchManifestHandler queries.GetDispatchManifestQueryHandler
}

// ServerParams bundles the handlers a Server needs.
type ServerParams struct {
	StoreID string

	CreateOrderHandler           commands.CreateOrderCommandHandler
	ChangeOrderStatusHandler     commands.ChangeOrderStatusCommandHandler
	DeleteOrderHandler           commands.DeleteOrderCommandHandler
	CreateProductHandler         commands.CreateProductCommandHandler
	CreateCarrierHandler         commands.CreateCarrierCommandHandler
	CreateSessionHandler         commands.CreateSessionCommandHandler
	RecordPickHandler            commands.RecordPickCommandHandler
	CompletePickingHandler       commands.CompletePickingCommandHandler
	CompletePackingHandler       commands.CompletePackingCommandHandler
	DispatchSessionHandler       commands.DispatchSessionCommandHandler
	ImportDeliveryResultsHandler commands.ImportDeliveryResultsCommandHandler
	ProcessSettlementHandler     commands.ProcessSettlementCommandHandler
	ResolveReturnItemHandler     commands.ResolveReturnItemCommandHandler
	CompleteReturnHandler        commands.CompleteReturnSessionCommandHandler
	CancelSessionHandler         commands.CancelSessionCommandHandler

	GetOrderHandler            queries.GetOrderQueryHandler
	GetOrdersHandler           queries.GetOrdersQueryHandler
	GetProductHandler          queries.GetProductQueryHandler
	GetProductMovementsHandler queries.GetProductMovementsQueryHandler
	GetSessionHandler          queries.GetSessionQueryHandler
	GetDispatchManifestHandler queries.GetDispatchManifestQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers. StoreID scopes the daily session code counters.
func NewServer(params ServerParams) *Server {
	return &Server{
		storeID: params.StoreID,

		createOrderHandler:           params.CreateOrderHandler,
		changeOrderStatusHandler:     params.ChangeOrderStatusHandler,
		deleteOrderHandler:           params.DeleteOrderHandler,
		createProductHandler:         params.CreateProductHandler,
		createCarrierHandler:         params.CreateCarrierHandler,
		createSessionHandler:         params.CreateSessionHandler,
		recordPickHandler:            params.RecordPickHandler,
		completePickingHandler:       params.CompletePickingHandler,
		completePackingHandler:       params.CompletePackingHandler,
		dispatchSessionHandler:       params.DispatchSessionHandler,
		importDeliveryResultsHandler: params.ImportDeliveryResultsHandler,
		processSettlementHandler:     params.ProcessSettlementHandler,
		resolveReturnItemHandler:     params.ResolveReturnItemHandler,
		completeReturnHandler:        params.CompleteReturnHandler,
		cancelSessionHandler:         params.CancelSessionHandler,

		getOrderHandler:            params.GetOrderHandler,
		getOrdersHandler:           params.GetOrdersHandler,
		getProductHandler:          params.GetProductHandler,
		getProductMovementsHandler: params.GetProductMovementsHandler,
		getSessionHandler:          params.GetSessionHandler,
		getDispatchManifestHandler: params.GetDispatchManifestHandler,
	}
}

// RegisterRoutes wires the API surface under /api/v1 and installs the request
// validator.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	v1.DELETE("/orders/:id", s.DeleteOrder)

	v1.POST("/products", s.CreateProduct)
	v1.GET("/products/:id", s.GetProduct)
	v1.GET("/products/:id/movements", s.GetProductMovements)

	v1.POST("/carriers", s.CreateCarrier)

	v1.POST("/warehouse/sessions", s.CreatePickingSession)
	v1.GET("/warehouse/sessions/:id", s.GetSession)
	v1.POST("/warehouse/sessions/:id/pick", s.RecordPick)
	v1.POST("/warehouse/sessions/:id/complete-picking", s.CompletePicking)
	v1.POST("/warehouse/sessions/:id/complete-packing", s.CompletePacking)
	v1.POST("/warehouse/sessions/:id/cancel", s.CancelSession)

	v1.POST("/settlements/dispatch-sessions", s.CreateDispatchSession)
	v1.GET("/settlements/dispatch-sessions/:id", s.GetSession)
	v1.GET("/settlements/dispatch-sessions/:id/manifest", s.GetDispatchManifest)
	v1.POST("/settlements/dispatch-sessions/:id/dispatch", s.DispatchSession)
	v1.POST("/settlements/dispatch-sessions/:id/import", s.ImportDeliveryResults)
	v1.POST("/settlements/dispatch-sessions/:id/process", s.ProcessSettlement)
	v1.POST("/settlements/dispatch-sessions/:id/cancel", s.CancelSession)

	v1.POST("/returns/sessions", s.CreateReturnSession)
	v1.GET("/returns/sessions/:id", s.GetSession)
	v1.PATCH("/returns/sessions/:id/items/:item_id", s.ResolveReturnItem)
	v1.POST("/returns/sessions/:id/complete", s.CompleteReturnSession)
	v1.POST("/returns/sessions/:id/cancel", s.CancelSession)
}
