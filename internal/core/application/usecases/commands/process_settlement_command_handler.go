package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// ProcessSettlementCommandHandler reconciles a processed dispatch session:
// expected COD against collected COD plus carrier fees per zone. On success
// the session reaches SETTLED and its reservations are released.
//
// Example:
//
//	handler := NewProcessSettlementCommandHandler(uowFactory)
//	cmd, _ := NewProcessSettlementCommand(sessionID, false, "")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, session.ErrUnconfirmedDiscrepancy) {
//	    // re-submit with discrepancyConfirmed=true once investigated
//	}
type ProcessSettlementCommandHandler struct {
	uowFactory UoWFactory
	calculator *services.SettlementCalculator
}

// NewProcessSettlementCommandHandler creates a handler for settlement processing.
func NewProcessSettlementCommandHandler(uowFactory UoWFactory) ProcessSettlementCommandHandler {
	return ProcessSettlementCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewSettlementCalculator(),
	}
}

// Handle processes the settlement command.
func (h ProcessSettlementCommandHandler) Handle(ctx context.Context, cmd ProcessSettlementCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sess, err := uow.SessionRepository().Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}
	if sess.CarrierID() == nil {
		return ErrCarrierNotAssigned
	}

	orders, err := uow.OrderRepository().GetMany(ctx, sess.MemberOrderIDs())
	if err != nil {
		return err
	}

	car, err := uow.CarrierRepository().Get(ctx, *sess.CarrierID())
	if err != nil {
		return err
	}

	settlement, err := h.calculator.Calculate(sess, orders, car, cmd.DiscrepancyConfirmed(), cmd.Notes())
	if err != nil {
		return err
	}

	if err = sess.Settle(settlement); err != nil {
		return err
	}

	if err = uow.SessionRepository().ReleaseOrders(ctx, sess.ID()); err != nil {
		return err
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
