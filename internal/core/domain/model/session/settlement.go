package session

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ErrUnconfirmedDiscrepancy is returned when settling a dispatch session whose
// collected COD differs from the expected amount without the discrepancy being
// explicitly confirmed.
var ErrUnconfirmedDiscrepancy = errors.New("COD discrepancy must be confirmed before settling")

// Settlement is the financial reconciliation of a completed dispatch session:
// courier-collected COD against the expected amount, plus carrier fees.
// Discrepancy is always collected minus expected.
type Settlement struct {
	dispatchSessionID    kernel.UUID
	totalCODExpected     decimal.Decimal
	totalCODCollected    decimal.Decimal
	carrierFees          decimal.Decimal
	discrepancy          decimal.Decimal
	discrepancyConfirmed bool
	notes                string
}

// NewSettlement builds a settlement for a dispatch session. The discrepancy is
// derived, never supplied.
func NewSettlement(
	dispatchSessionID kernel.UUID,
	totalCODExpected, totalCODCollected, carrierFees decimal.Decimal,
	discrepancyConfirmed bool,
	notes string,
) (Settlement, error) {
	if err := dispatchSessionID.Validate(); err != nil {
		return Settlement{}, err
	}

	return Settlement{
		dispatchSessionID:    dispatchSessionID,
		totalCODExpected:     totalCODExpected,
		totalCODCollected:    totalCODCollected,
		carrierFees:          carrierFees,
		discrepancy:          totalCODCollected.Sub(totalCODExpected),
		discrepancyConfirmed: discrepancyConfirmed,
		notes:                notes,
	}, nil
}

// DispatchSessionID returns the settled session's identifier.
func (s Settlement) DispatchSessionID() kernel.UUID {
	return s.dispatchSessionID
}

// TotalCODExpected returns the COD amount the courier should have collected:
// the sum of totals over delivered cash orders.
func (s Settlement) TotalCODExpected() decimal.Decimal {
	return s.totalCODExpected
}

// TotalCODCollected returns the COD amount the courier reported collecting.
func (s Settlement) TotalCODCollected() decimal.Decimal {
	return s.totalCODCollected
}

// CarrierFees returns the fees owed to the carrier per its zone rate table.
func (s Settlement) CarrierFees() decimal.Decimal {
	return s.carrierFees
}

// Discrepancy returns collected minus expected.
func (s Settlement) Discrepancy() decimal.Decimal {
	return s.discrepancy
}

// DiscrepancyConfirmed reports whether a non-zero discrepancy was explicitly
// acknowledged by the operator.
func (s Settlement) DiscrepancyConfirmed() bool {
	return s.discrepancyConfirmed
}

// Notes returns free-form reconciliation notes.
func (s Settlement) Notes() string {
	return s.notes
}
