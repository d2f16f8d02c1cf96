package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDispatchManifestQueryIsNotConstructed = errors.New(
	"GetDispatchManifestQuery must be created via NewGetDispatchManifestQuery constructor",
)

// GetDispatchManifestQuery builds the courier hand-off manifest of a dispatch
// session: one row per member order with the recipient details and the COD
// amount to collect. The HTTP layer renders it as CSV or XLSX.
type GetDispatchManifestQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDispatchManifestQuery creates a query for a session's manifest.
func NewGetDispatchManifestQuery(sessionID kernel.UUID) (GetDispatchManifestQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetDispatchManifestQuery{}, err
	}

	return GetDispatchManifestQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchManifestQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchManifestQueryIsNotConstructed)
}

// SessionID returns the dispatch session whose manifest is requested.
func (q GetDispatchManifestQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// ManifestRow is one order line of the hand-off manifest. CODAmount is the
// order total for cash orders and zero otherwise; ItemsSummary condenses the
// line items into a single printable cell ("2 x Thermal Flask, 1 x Mug").
type ManifestRow struct {
	OrderID          kernel.UUID
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	RecipientZone    string
	RecipientMapLink string
	RecipientNotes   string
	PaymentMethod    string
	CODAmount        decimal.Decimal
	TotalQuantity    int
	ItemsSummary     string
	OrderDate        time.Time
}

// GetDispatchManifestQueryResponse is the printable manifest of one dispatch
// session.
type GetDispatchManifestQueryResponse struct {
	SessionCode string
	CarrierName string
	Rows        []ManifestRow
}
