package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx reply: a machine-readable code
// plus a human-readable message carrying the ids involved.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeValidationError       = "VALIDATION_ERROR"
	codeInvalidTransition     = "INVALID_TRANSITION"
	codeInvalidStatus         = "INVALID_STATUS"
	codeInsufficientStock     = "INSUFFICIENT_STOCK"
	codeOrderAlreadyInSession = "ORDER_ALREADY_IN_SESSION"
	codeOrdersNotEligible     = "ORDERS_NOT_ELIGIBLE"
	codeQuantityExceeds       = "QUANTITY_EXCEEDS_ORDERED"
	codeUnconfirmedDiscrep    = "UNCONFIRMED_DISCREPANCY"
	codePickingIncomplete     = "PICKING_INCOMPLETE"
	codeOrderNotInSession     = "ORDER_NOT_IN_SESSION"
	codeOrderHasMovements     = "ORDER_HAS_STOCK_MOVEMENTS"
	codeCarrierNotAssigned    = "CARRIER_NOT_ASSIGNED"
	codeNotFound              = "NOT_FOUND"
	codeInternalError         = "INTERNAL_ERROR"
)

// errorResponse translates a use case error into an HTTP status and a
// machine-readable error code. Unknown errors map to 500 without leaking
// internals.
func errorResponse(ctx echo.Context, err error) error {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(status, ErrorResponse{Code: code, Message: message})
}

func classify(err error) (int, string) {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound),
		errors.Is(err, session.ErrReturnItemNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, order.ErrInvalidStatus):
		return http.StatusBadRequest, codeInvalidStatus
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, session.ErrInvalidSessionTransition):
		return http.StatusConflict, codeInvalidTransition
	case errors.Is(err, product.ErrInsufficientStock):
		return http.StatusConflict, codeInsufficientStock
	case errors.Is(err, session.ErrOrderAlreadyInSession):
		return http.StatusConflict, codeOrderAlreadyInSession
	case errors.Is(err, session.ErrOrdersNotEligible):
		return http.StatusUnprocessableEntity, codeOrdersNotEligible
	case errors.Is(err, session.ErrQuantityExceedsOrdered):
		return http.StatusUnprocessableEntity, codeQuantityExceeds
	case errors.Is(err, session.ErrUnconfirmedDiscrepancy):
		return http.StatusConflict, codeUnconfirmedDiscrep
	case errors.Is(err, session.ErrPickingIncomplete):
		return http.StatusConflict, codePickingIncomplete
	case errors.Is(err, session.ErrOrderNotInSession):
		return http.StatusUnprocessableEntity, codeOrderNotInSession
	case errors.Is(err, commands.ErrOrderHasStockMovements):
		return http.StatusConflict, codeOrderHasMovements
	case errors.Is(err, commands.ErrCarrierNotAssigned):
		return http.StatusConflict, codeCarrierNotAssigned
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, codeValidationError
	default:
		return http.StatusInternalServerError, codeInternalError
	}
}

// badRequest replies with a VALIDATION_ERROR body for malformed input caught
// before a command is even constructed.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: codeValidationError, Message: message})
}
