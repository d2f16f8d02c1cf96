package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for session aggregates,
// the reservation claims backing membership exclusivity, and the per-store
// daily code sequence.
type SessionRepository interface {
	// Add persists a new session aggregate to storage.
	Add(ctx context.Context, aggregate *session.Session) error

	// Update persists changes to an existing session aggregate.
	Update(ctx context.Context, aggregate *session.Session) error

	// Get retrieves a session by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)

	// ReserveOrders atomically claims the orders for the session. A claim
	// conflicting with another active session of the same kind fails with
	// session.ErrOrderAlreadyInSession; exactly one of two racing callers wins
	// a contested order.
	ReserveOrders(ctx context.Context, kind session.Kind, sessionID kernel.UUID, orderIDs []kernel.UUID) error

	// ReleaseOrders drops every reservation held by the session. Called when
	// the session reaches a terminal status, before the transaction commits.
	ReleaseOrders(ctx context.Context, sessionID kernel.UUID) error

	// NextSequence allocates the next code sequence number for the store, kind
	// and day. Allocation is serialized per counter row; the sequence resets
	// daily.
	NextSequence(ctx context.Context, storeID string, kind session.Kind, day time.Time) (int, error)
}
