package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetSessionQueryIsNotConstructed = errors.New(
	"GetSessionQuery must be created via NewGetSessionQuery constructor",
)

// GetSessionQuery retrieves one session with its kind-specific children.
type GetSessionQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSessionQuery creates a query to retrieve a session by identifier.
func NewGetSessionQuery(sessionID kernel.UUID) (GetSessionQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetSessionQuery{}, err
	}

	return GetSessionQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

// SessionID returns the requested session identifier.
func (q GetSessionQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// SessionPickItemResponse is one per-product pick tracker row.
type SessionPickItemResponse struct {
	ProductID      kernel.UUID
	QuantityNeeded int
	QuantityPicked int
}

// SessionDeliveryResponse is one per-order delivery tracker row.
type SessionDeliveryResponse struct {
	OrderID      kernel.UUID
	Result       string
	CODCollected decimal.Decimal
}

// SessionReturnItemResponse is one return item resolution row.
type SessionReturnItemResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	ProductID        kernel.UUID
	OrderedQuantity  int
	AcceptedQuantity int
	RejectedQuantity int
	RejectionReason  string
	Status           string
}

// SessionSettlementResponse is the recorded reconciliation of a settled
// dispatch session.
type SessionSettlementResponse struct {
	TotalCODExpected     decimal.Decimal
	TotalCODCollected    decimal.Decimal
	CarrierFees          decimal.Decimal
	Discrepancy          decimal.Decimal
	DiscrepancyConfirmed bool
	Notes                string
}

// GetSessionQueryResponse is the session read model. Only the child slices
// matching the kind are populated; Settlement is nil until the session settles.
type GetSessionQueryResponse struct {
	ID          kernel.UUID
	Kind        string
	Code        string
	Status      string
	CarrierID   *kernel.UUID
	OrderIDs    []kernel.UUID
	PickItems   []SessionPickItemResponse
	Deliveries  []SessionDeliveryResponse
	ReturnItems []SessionReturnItemResponse
	Settlement  *SessionSettlementResponse
	CreatedAt   time.Time
}
