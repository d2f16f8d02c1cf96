package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"

	"github.com/labstack/echo/v4"
)

// DispatchSession handles POST /api/v1/settlements/dispatch-sessions/{id}/dispatch -
// hands the session's orders to the carrier, moving them to SHIPPED.
func (s *Server) DispatchSession(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewDispatchSessionCommand(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.dispatchSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ImportDeliveryResults handles POST /api/v1/settlements/dispatch-sessions/{id}/import -
// records the courier's per-order outcomes and collected COD amounts.
func (s *Server) ImportDeliveryResults(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var req ImportDeliveryResultsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	results := make([]commands.DeliveryResultSpec, len(req.Results))
	for i, r := range req.Results {
		orderID, resultErr := kernel.UUIDFromString(r.OrderID)
		if resultErr != nil {
			return badRequest(ctx, "invalid order id: "+r.OrderID)
		}
		results[i] = commands.DeliveryResultSpec{
			OrderID:      orderID,
			Result:       session.DeliveryResult(r.Result),
			CODCollected: r.CODCollected,
		}
	}

	cmd, err := commands.NewImportDeliveryResultsCommand(sessionID, results)
	if err != nil {
		return errorResponse(ctx, err)
	}

	failures, err := s.importDeliveryResultsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, importDeliveryResultsResponseFrom(failures))
}

// ProcessSettlement handles POST /api/v1/settlements/dispatch-sessions/{id}/process -
// reconciles expected against collected COD and settles the session. A nonzero
// discrepancy must be explicitly confirmed.
func (s *Server) ProcessSettlement(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var req ProcessSettlementRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewProcessSettlementCommand(sessionID, req.DiscrepancyConfirmed, req.Notes)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.processSettlementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
