package sessionrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counterDayFormat is the key under which one day's code sequence lives.
const counterDayFormat = "2006-01-02"

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session with all its child rows to the database.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing session to the database. The session row is
// updated in place; the mutable child rows (membership packed flags, pick
// counts, delivery results, return resolutions) are replaced wholesale, and
// the settlement row is upserted once it exists.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SessionDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":     dto.Status,
		"carrier_id": dto.CarrierID,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.replaceChildren(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSessionRepository) replaceChildren(ctx context.Context, dto SessionDTO) error {
	db := r.db.WithContext(ctx)

	if err := db.Delete(&SessionOrderDTO{}, "session_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.Orders) > 0 {
		if err := db.Create(&dto.Orders).Error; err != nil {
			return err
		}
	}

	if err := db.Delete(&PickItemDTO{}, "session_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.PickItems) > 0 {
		if err := db.Create(&dto.PickItems).Error; err != nil {
			return err
		}
	}

	if err := db.Delete(&DeliveryDTO{}, "session_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.Deliveries) > 0 {
		if err := db.Create(&dto.Deliveries).Error; err != nil {
			return err
		}
	}

	if err := db.Delete(&ReturnItemDTO{}, "session_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.ReturnItems) > 0 {
		if err := db.Create(&dto.ReturnItems).Error; err != nil {
			return err
		}
	}

	if dto.Settlement != nil {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).Create(dto.Settlement).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a session with all its child rows by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Preload("PickItems").
		Preload("Deliveries").
		Preload("ReturnItems").
		Preload("Settlement").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ReserveOrders atomically claims the orders for the session by inserting
// one reservation row per order. The composite primary key (kind, order_id)
// makes the insert fail when another active session of the same kind already
// holds one of the orders; the conflict surfaces as
// session.ErrOrderAlreadyInSession and exactly one of two racing callers
// wins a contested order.
func (r *GormSessionRepository) ReserveOrders(
	ctx context.Context,
	kind session.Kind,
	sessionID kernel.UUID,
	orderIDs []kernel.UUID,
) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if err := sessionID.Validate(); err != nil {
		return err
	}
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}

	reservations := make([]ReservationDTO, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		if err := orderID.Validate(); err != nil {
			return err
		}
		reservations = append(reservations, ReservationDTO{
			Kind:      kind.String(),
			OrderID:   orderID.Bytes(),
			SessionID: sessionID.Bytes(),
		})
	}

	if err := r.db.WithContext(ctx).Create(&reservations).Error; err != nil {
		if isUniqueViolation(err) {
			return session.ErrOrderAlreadyInSession
		}
		return err
	}

	return nil
}

// ReleaseOrders drops every reservation held by the session.
func (r *GormSessionRepository) ReleaseOrders(ctx context.Context, sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&ReservationDTO{}, "session_id = ?", sessionID.Bytes()).Error
}

// NextSequence allocates the next code sequence number for the store, kind
// and day. The counter row is locked for the remainder of the surrounding
// transaction, so two sessions created concurrently get distinct numbers.
func (r *GormSessionRepository) NextSequence(
	ctx context.Context,
	storeID string,
	kind session.Kind,
	day time.Time,
) (int, error) {
	if storeID == "" {
		return 0, errs.NewValueIsRequiredError("store id")
	}
	if err := kind.Validate(); err != nil {
		return 0, err
	}

	counter := CounterDTO{
		StoreID:  storeID,
		Kind:     kind.String(),
		Day:      day.UTC().Format(counterDayFormat),
		Sequence: 0,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "kind"}, {Name: "day"}},
		DoNothing: true,
	}).Create(&counter).Error
	if err != nil {
		return 0, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "store_id = ? AND kind = ? AND day = ?", counter.StoreID, counter.Kind, counter.Day).Error
	if err != nil {
		return 0, err
	}

	counter.Sequence++
	err = r.db.WithContext(ctx).
		Model(&CounterDTO{}).
		Where("store_id = ? AND kind = ? AND day = ?", counter.StoreID, counter.Kind, counter.Day).
		Updates(map[string]any{"sequence": counter.Sequence}).Error
	if err != nil {
		return 0, err
	}

	return counter.Sequence, nil
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation, either as surfaced by the lib/pq driver or after
// GORM's error translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
