package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - places a new order in PENDING.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	lineItems := make([]commands.LineItemSpec, len(req.LineItems))
	for i, item := range req.LineItems {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "invalid product id: "+item.ProductID)
		}
		lineItems[i] = commands.LineItemSpec{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		customerID,
		order.PaymentMethod(req.PaymentMethod),
		req.ShippingCost,
		order.Recipient{
			Name:    req.Recipient.Name,
			Phone:   req.Recipient.Phone,
			Address: req.Recipient.Address,
			Zone:    req.Recipient.Zone,
			MapLink: req.Recipient.MapLink,
			Notes:   req.Recipient.Notes,
		},
		lineItems,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally filtered by
// status.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := queries.NewGetOrdersQuery(ctx.QueryParam("status"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummariesFrom(rows))
}

// GetOrder handles GET /api/v1/orders/{id} - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(response))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{id}/status - moves an order
// along its lifecycle. Cancelling a prepared order restores stock.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/{id} - removes an order that has
// never touched stock.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateProduct handles POST /api/v1/products - registers a product with its
// opening stock level.
func (s *Server) CreateProduct(ctx echo.Context) error {
	var req CreateProductRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		productID, req.Name, req.SKU, req.InitialStock, req.Price, req.Cost,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": productID.String()})
}

// GetProduct handles GET /api/v1/products/{id} - retrieves one product with
// its current and opening stock levels.
func (s *Server) GetProduct(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid product id")
	}

	query, err := queries.NewGetProductQuery(productID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getProductHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, productResponseFrom(response))
}

// GetProductMovements handles GET /api/v1/products/{id}/movements - exposes
// the stock movement audit trail, oldest first.
func (s *Server) GetProductMovements(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid product id")
	}

	query, err := queries.NewGetProductMovementsQuery(productID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	rows, err := s.getProductMovementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, movementsFrom(rows))
}

// CreateCarrier handles POST /api/v1/carriers - registers a delivery company
// with its per-zone fee table.
func (s *Server) CreateCarrier(ctx echo.Context) error {
	var req CreateCarrierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	rates := make([]commands.ZoneRateSpec, len(req.Rates))
	for i, rate := range req.Rates {
		rates[i] = commands.ZoneRateSpec{Zone: rate.Zone, Fee: rate.Fee}
	}

	carrierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCarrierCommand(carrierID, req.Name, rates)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createCarrierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": carrierID.String()})
}
