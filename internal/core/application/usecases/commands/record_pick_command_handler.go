package commands

import (
	"context"
)

// RecordPickCommandHandler records picked quantities on an open picking session.
type RecordPickCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewRecordPickCommandHandler creates a handler for pick recording.
func NewRecordPickCommandHandler(uowFactory SessionUoWFactory) RecordPickCommandHandler {
	return RecordPickCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pick recording command.
func (h RecordPickCommandHandler) Handle(ctx context.Context, cmd RecordPickCommand) error {
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

	if err = sess.RecordPick(cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
