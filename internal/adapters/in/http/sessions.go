package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"

	"github.com/labstack/echo/v4"
)

// CreatePickingSession handles POST /api/v1/warehouse/sessions - opens a
// picking session over a set of CONFIRMED orders.
func (s *Server) CreatePickingSession(ctx echo.Context) error {
	var req CreateSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.createSession(ctx, session.KindPicking, req.OrderIDs, nil)
}

// CreateDispatchSession handles POST /api/v1/settlements/dispatch-sessions -
// opens a dispatch session over READY_TO_SHIP orders, optionally assigning a
// carrier up front.
func (s *Server) CreateDispatchSession(ctx echo.Context) error {
	var req CreateDispatchSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	var carrierID *kernel.UUID
	if req.CarrierID != "" {
		id, err := kernel.UUIDFromString(req.CarrierID)
		if err != nil {
			return badRequest(ctx, "invalid carrier id")
		}
		carrierID = &id
	}

	return s.createSession(ctx, session.KindDispatch, req.OrderIDs, carrierID)
}

// CreateReturnSession handles POST /api/v1/returns/sessions - opens a return
// session over SHIPPED or DELIVERED orders.
func (s *Server) CreateReturnSession(ctx echo.Context) error {
	var req CreateSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.createSession(ctx, session.KindReturn, req.OrderIDs, nil)
}

func (s *Server) createSession(
	ctx echo.Context,
	kind session.Kind,
	rawOrderIDs []string,
	carrierID *kernel.UUID,
) error {
	orderIDs := make([]kernel.UUID, len(rawOrderIDs))
	for i, raw := range rawOrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid order id: "+raw)
		}
		orderIDs[i] = id
	}

	sessionID := kernel.NewUUID()
	cmd, err := commands.NewCreateSessionCommand(sessionID, kind, s.storeID, orderIDs, carrierID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.createSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": sessionID.String()})
}

// GetSession handles the session detail endpoints of all three kinds.
func (s *Server) GetSession(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	query, err := queries.NewGetSessionQuery(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getSessionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionResponseFrom(response))
}

// RecordPick handles POST /api/v1/warehouse/sessions/{id}/pick - records
// picked units against the session's per-product tracker.
func (s *Server) RecordPick(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var req RecordPickRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return badRequest(ctx, "invalid product id")
	}

	cmd, err := commands.NewRecordPickCommand(sessionID, productID, req.PickedQuantity)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.recordPickHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePicking handles POST /api/v1/warehouse/sessions/{id}/complete-picking -
// closes the picking phase once every tracker line is fully picked.
func (s *Server) CompletePicking(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewCompletePickingCommand(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.completePickingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePacking handles POST /api/v1/warehouse/sessions/{id}/complete-packing -
// marks one member order packed, decrementing stock atomically with the
// order's move to READY_TO_SHIP.
func (s *Server) CompletePacking(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var req CompletePackingRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCompletePackingCommand(sessionID, orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.completePackingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelSession handles the cancel endpoints of all three kinds - releases the
// session's order reservations synchronously.
func (s *Server) CancelSession(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewCancelSessionCommand(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.cancelSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
