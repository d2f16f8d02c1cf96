package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"

	"github.com/labstack/echo/v4"
)

// ResolveReturnItem handles PATCH /api/v1/returns/sessions/{id}/items/{item_id} -
// records the per-item inspection verdict.
func (s *Server) ResolveReturnItem(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return badRequest(ctx, "invalid item id")
	}

	var req ResolveReturnItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = ctx.Validate(&req); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewResolveReturnItemCommand(
		sessionID,
		itemID,
		session.ReturnItemStatus(req.Status),
		req.AcceptedQuantity,
		req.RejectedQuantity,
		req.RejectionReason,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.resolveReturnItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteReturnSession handles POST /api/v1/returns/sessions/{id}/complete -
// restores accepted quantities to stock and moves the orders to RETURNED.
func (s *Server) CompleteReturnSession(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	cmd, err := commands.NewCompleteReturnSessionCommand(sessionID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.completeReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
