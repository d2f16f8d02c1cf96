package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateCarrierCommandIsNotConstructed = errors.New(
	"CreateCarrierCommand must be created via NewCreateCarrierCommand constructor",
)

// ZoneRateSpec is one row of the carrier fee table as submitted by the caller.
type ZoneRateSpec struct {
	Zone string
	Fee  decimal.Decimal
}

// CreateCarrierCommand represents a request to register a delivery company
// together with its per-zone fee table.
type CreateCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	name      string
	rates     []ZoneRateSpec

	guard guard.ConstructorGuard
}

// NewCreateCarrierCommand creates a command to register a new carrier.
// The rate table may be empty; settlement then fails for zones without a rate.
func NewCreateCarrierCommand(carrierID kernel.UUID, name string, rates []ZoneRateSpec) (CreateCarrierCommand, error) {
	cmd := CreateCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := carrierID.Validate(); err != nil {
		return CreateCarrierCommand{}, err
	}
	if name == "" {
		return CreateCarrierCommand{}, errs.NewValueIsRequiredError("name")
	}

	cmd.carrierID = carrierID
	cmd.name = name
	cmd.rates = rates
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCarrierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCarrierCommandIsNotConstructed)
}

// CarrierID returns the identifier for the new carrier.
func (c CreateCarrierCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// Name returns the carrier name.
func (c CreateCarrierCommand) Name() string {
	return c.name
}

// Rates returns the submitted fee table rows.
func (c CreateCarrierCommand) Rates() []ZoneRateSpec {
	return c.rates
}
