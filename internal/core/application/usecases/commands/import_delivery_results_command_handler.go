package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/session"

	"github.com/shopspring/decimal"
)

// ImportFailure reports one result row that could not be applied. The rest of
// the batch is unaffected by it.
type ImportFailure struct {
	OrderID kernel.UUID
	Reason  string
}

// ImportDeliveryResultsCommandHandler applies the courier's outcome report to
// a dispatched session. Delivered orders move SHIPPED -> DELIVERED; failed
// ones stay SHIPPED. Result rows are independent: a row that cannot be
// applied (unknown order, order no longer SHIPPED) is reported as a failure
// and recorded as a failed delivery, while the remaining rows still commit.
// After the import the session moves to PROCESSING, ready for settlement.
type ImportDeliveryResultsCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewImportDeliveryResultsCommandHandler creates a handler for result import.
func NewImportDeliveryResultsCommandHandler(uowFactory SessionUoWFactory) ImportDeliveryResultsCommandHandler {
	return ImportDeliveryResultsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the import command. The returned failures list the result
// rows that were rejected; it is empty when the whole batch applied.
func (h ImportDeliveryResultsCommandHandler) Handle(
	ctx context.Context,
	cmd ImportDeliveryResultsCommand,
) ([]ImportFailure, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sess, err := uow.SessionRepository().Get(ctx, cmd.SessionID())
	if err != nil {
		return nil, err
	}

	failures := make([]ImportFailure, 0)
	for _, spec := range cmd.Results() {
		if err = sess.RecordDeliveryResult(spec.OrderID, spec.Result, spec.CODCollected); err != nil {
			failures = append(failures, ImportFailure{OrderID: spec.OrderID, Reason: err.Error()})
			continue
		}

		if spec.Result != session.DeliveryDelivered {
			continue
		}

		if err = h.markDelivered(ctx, uow, spec.OrderID); err != nil {
			// The order cannot take the delivery; downgrade the tracker
			// row so no COD expectation is left behind.
			_ = sess.RecordDeliveryResult(spec.OrderID, session.DeliveryFailed, decimal.Zero)
			failures = append(failures, ImportFailure{OrderID: spec.OrderID, Reason: err.Error()})
		}
	}

	if err = sess.BeginProcessing(); err != nil {
		return nil, err
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return failures, nil
}

func (h ImportDeliveryResultsCommandHandler) markDelivered(
	ctx context.Context,
	uow SessionUoW,
	orderID kernel.UUID,
) error {
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	if err = o.TransitionTo(order.Delivered); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}
