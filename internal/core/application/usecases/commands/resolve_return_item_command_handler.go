package commands

import (
	"context"
)

// ResolveReturnItemCommandHandler records the accept/reject verdict for one
// item of an open return session. Stock is not touched here; restores happen
// when the session completes.
type ResolveReturnItemCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewResolveReturnItemCommandHandler creates a handler for return item resolution.
func NewResolveReturnItemCommandHandler(uowFactory SessionUoWFactory) ResolveReturnItemCommandHandler {
	return ResolveReturnItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command.
func (h ResolveReturnItemCommandHandler) Handle(ctx context.Context, cmd ResolveReturnItemCommand) error {
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

	if err = sess.ResolveReturnItem(cmd.ItemID(), cmd.Status(), cmd.Accepted(), cmd.Rejected(), cmd.Reason()); err != nil {
		return err
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
