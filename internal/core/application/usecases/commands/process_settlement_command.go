package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessSettlementCommandIsNotConstructed = errors.New(
	"ProcessSettlementCommand must be created via NewProcessSettlementCommand constructor",
)

// ProcessSettlementCommand represents the financial reconciliation of a
// dispatch session after its delivery results were imported.
type ProcessSettlementCommand struct { //nolint:recvcheck //using for validation
	sessionID            kernel.UUID
	discrepancyConfirmed bool
	notes                string

	guard guard.ConstructorGuard
}

// NewProcessSettlementCommand creates a command to settle a dispatch session.
// discrepancyConfirmed acknowledges a known difference between expected and
// collected COD; without it a non-zero discrepancy blocks settlement.
func NewProcessSettlementCommand(sessionID kernel.UUID, discrepancyConfirmed bool, notes string) (ProcessSettlementCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return ProcessSettlementCommand{}, err
	}

	return ProcessSettlementCommand{
		sessionID:            sessionID,
		discrepancyConfirmed: discrepancyConfirmed,
		notes:                notes,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessSettlementCommand) Validate() error {
	return c.guard.Validate(ErrProcessSettlementCommandIsNotConstructed)
}

// SessionID returns the session to settle.
func (c ProcessSettlementCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// DiscrepancyConfirmed reports whether the operator acknowledged a COD difference.
func (c ProcessSettlementCommand) DiscrepancyConfirmed() bool {
	return c.discrepancyConfirmed
}

// Notes returns free-form reconciliation notes.
func (c ProcessSettlementCommand) Notes() string {
	return c.notes
}
