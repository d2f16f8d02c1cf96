package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrImportDeliveryResultsCommandIsNotConstructed = errors.New(
	"ImportDeliveryResultsCommand must be created via NewImportDeliveryResultsCommand constructor",
)

// DeliveryResultSpec is one courier-reported outcome row.
type DeliveryResultSpec struct {
	OrderID      kernel.UUID
	Result       session.DeliveryResult
	CODCollected decimal.Decimal
}

// ImportDeliveryResultsCommand represents the import of the courier's outcome
// report for a dispatched session.
type ImportDeliveryResultsCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	results   []DeliveryResultSpec

	guard guard.ConstructorGuard
}

// NewImportDeliveryResultsCommand creates a command to import delivery results.
func NewImportDeliveryResultsCommand(sessionID kernel.UUID, results []DeliveryResultSpec) (ImportDeliveryResultsCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return ImportDeliveryResultsCommand{}, err
	}
	if len(results) == 0 {
		return ImportDeliveryResultsCommand{}, errs.NewValueIsRequiredError("results")
	}
	for _, r := range results {
		if err := errors.Join(r.OrderID.Validate(), r.Result.Validate()); err != nil {
			return ImportDeliveryResultsCommand{}, err
		}
	}

	return ImportDeliveryResultsCommand{
		sessionID: sessionID,
		results:   results,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportDeliveryResultsCommand) Validate() error {
	return c.guard.Validate(ErrImportDeliveryResultsCommandIsNotConstructed)
}

// SessionID returns the dispatched session.
func (c ImportDeliveryResultsCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Results returns the imported outcome rows.
func (c ImportDeliveryResultsCommand) Results() []DeliveryResultSpec {
	return c.results
}
