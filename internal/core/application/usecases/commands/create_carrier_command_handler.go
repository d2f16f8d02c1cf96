package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CreateCarrierCommandHandler handles carrier registration.
type CreateCarrierCommandHandler struct {
	uowFactory CarrierUoWFactory
}

// NewCreateCarrierCommandHandler creates a handler for carrier registration.
func NewCreateCarrierCommandHandler(uowFactory CarrierUoWFactory) CreateCarrierCommandHandler {
	return CreateCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists a new carrier with its zone rate table.
func (h CreateCarrierCommandHandler) Handle(ctx context.Context, cmd CreateCarrierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	rates := make([]*carrier.ZoneRate, 0, len(cmd.Rates()))
	for _, spec := range cmd.Rates() {
		rate, err := carrier.NewZoneRate(kernel.NewUUID(), spec.Zone, spec.Fee)
		if err != nil {
			return err
		}
		rates = append(rates, rate)
	}

	c, err := carrier.NewCarrier(cmd.CarrierID(), cmd.Name(), rates)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CarrierRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
