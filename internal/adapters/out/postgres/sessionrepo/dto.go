// Package sessionrepo provides data transfer objects and mapping functions
// for session persistence. A session aggregate spans the session row, its
// membership rows and the kind-specific child tables, plus two supporting
// tables owned by this package: the reservation claims backing membership
// exclusivity and the per-store daily code counters.
package sessionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionDTO represents the database structure for persisting session
// aggregates. Kind and status are stored in their wire representation.
type SessionDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind      string     `gorm:"index"`
	Code      string     `gorm:"uniqueIndex"`
	Status    string     `gorm:"index"`
	CarrierID *uuid.UUID `gorm:"type:uuid"`

	Orders      []SessionOrderDTO `gorm:"foreignKey:SessionID;references:ID"`
	PickItems   []PickItemDTO     `gorm:"foreignKey:SessionID;references:ID"`
	Deliveries  []DeliveryDTO     `gorm:"foreignKey:SessionID;references:ID"`
	ReturnItems []ReturnItemDTO   `gorm:"foreignKey:SessionID;references:ID"`
	Settlement  *SettlementDTO    `gorm:"foreignKey:SessionID;references:ID"`

	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention to use "sessions".
func (SessionDTO) TableName() string {
	return "sessions"
}

// SessionOrderDTO represents one order's membership in a session. Packed is
// only meaningful for picking sessions.
type SessionOrderDTO struct {
	SessionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Packed    bool
}

// TableName overrides GORM's default naming convention to use "session_orders".
func (SessionOrderDTO) TableName() string {
	return "session_orders"
}

// PickItemDTO represents one per-product pick tracker row of a picking session.
type PickItemDTO struct {
	SessionID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuantityNeeded int
	QuantityPicked int
}

// TableName overrides GORM's default naming convention to use "session_pick_items".
func (PickItemDTO) TableName() string {
	return "session_pick_items"
}

// DeliveryDTO represents one per-order delivery tracker row of a dispatch
// session.
type DeliveryDTO struct {
	SessionID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Result       string
	CODCollected decimal.Decimal `gorm:"column:cod_collected;type:numeric"`
}

// TableName overrides GORM's default naming convention to use "session_deliveries".
func (DeliveryDTO) TableName() string {
	return "session_deliveries"
}

// ReturnItemDTO represents one return item resolution row of a return session.
type ReturnItemDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID        uuid.UUID `gorm:"type:uuid;index"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	ProductID        uuid.UUID `gorm:"type:uuid"`
	OrderedQuantity  int
	AcceptedQuantity int
	RejectedQuantity int
	RejectionReason  string
	Status           string
}

// TableName overrides GORM's default naming convention to use "session_return_items".
func (ReturnItemDTO) TableName() string {
	return "session_return_items"
}

// SettlementDTO represents the financial reconciliation of a settled dispatch
// session. At most one row per session.
type SettlementDTO struct {
	SessionID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TotalCODExpected     decimal.Decimal `gorm:"column:total_cod_expected;type:numeric"`
	TotalCODCollected    decimal.Decimal `gorm:"column:total_cod_collected;type:numeric"`
	CarrierFees          decimal.Decimal `gorm:"type:numeric"`
	Discrepancy          decimal.Decimal `gorm:"type:numeric"`
	DiscrepancyConfirmed bool
	Notes                string
}

// TableName overrides GORM's default naming convention to use "session_settlements".
func (SettlementDTO) TableName() string {
	return "session_settlements"
}

// ReservationDTO represents one exclusive claim of an order by a session.
// The composite primary key (kind, order_id) is what makes two active
// sessions of the same kind unable to hold the same order.
type ReservationDTO struct {
	Kind      string    `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;index"`
}

// TableName overrides GORM's default naming convention to use "session_reservations".
func (ReservationDTO) TableName() string {
	return "session_reservations"
}

// CounterDTO represents one per-store, per-kind, per-day code sequence
// counter. The sequence resets daily because each day gets its own row.
type CounterDTO struct {
	StoreID  string `gorm:"primaryKey"`
	Kind     string `gorm:"primaryKey"`
	Day      string `gorm:"primaryKey"`
	Sequence int
}

// TableName overrides GORM's default naming convention to use "session_counters".
func (CounterDTO) TableName() string {
	return "session_counters"
}

// fromDomain converts a session domain aggregate to its database
// representation, including all child rows.
func fromDomain(s *session.Session) SessionDTO {
	var carrierID *uuid.UUID
	if id := s.CarrierID(); id != nil {
		raw := id.Bytes()
		carrierID = &raw
	}

	packed := make(map[kernel.UUID]bool, len(s.PackedOrderIDs()))
	for _, id := range s.PackedOrderIDs() {
		packed[id] = true
	}

	orders := make([]SessionOrderDTO, 0, len(s.MemberOrderIDs()))
	for _, id := range s.MemberOrderIDs() {
		orders = append(orders, SessionOrderDTO{
			SessionID: s.ID().Bytes(),
			OrderID:   id.Bytes(),
			Packed:    packed[id],
		})
	}

	pickItems := make([]PickItemDTO, 0, len(s.PickItems()))
	for _, item := range s.PickItems() {
		pickItems = append(pickItems, PickItemDTO{
			SessionID:      s.ID().Bytes(),
			ProductID:      item.ProductID().Bytes(),
			QuantityNeeded: item.QuantityNeeded(),
			QuantityPicked: item.QuantityPicked(),
		})
	}

	deliveries := make([]DeliveryDTO, 0, len(s.Deliveries()))
	for _, d := range s.Deliveries() {
		deliveries = append(deliveries, DeliveryDTO{
			SessionID:    s.ID().Bytes(),
			OrderID:      d.OrderID().Bytes(),
			Result:       string(d.Result()),
			CODCollected: d.CODCollected(),
		})
	}

	returnItems := make([]ReturnItemDTO, 0, len(s.ReturnItems()))
	for _, item := range s.ReturnItems() {
		returnItems = append(returnItems, ReturnItemDTO{
			ID:               item.ID().Bytes(),
			SessionID:        s.ID().Bytes(),
			OrderID:          item.OrderID().Bytes(),
			ProductID:        item.ProductID().Bytes(),
			OrderedQuantity:  item.OrderedQuantity(),
			AcceptedQuantity: item.AcceptedQuantity(),
			RejectedQuantity: item.RejectedQuantity(),
			RejectionReason:  item.RejectionReason(),
			Status:           string(item.Status()),
		})
	}

	var settlement *SettlementDTO
	if st := s.Settlement(); st != nil {
		settlement = &SettlementDTO{
			SessionID:            s.ID().Bytes(),
			TotalCODExpected:     st.TotalCODExpected(),
			TotalCODCollected:    st.TotalCODCollected(),
			CarrierFees:          st.CarrierFees(),
			Discrepancy:          st.Discrepancy(),
			DiscrepancyConfirmed: st.DiscrepancyConfirmed(),
			Notes:                st.Notes(),
		}
	}

	return SessionDTO{
		ID:          s.ID().Bytes(),
		Kind:        s.Kind().String(),
		Code:        s.Code(),
		Status:      s.Status().String(),
		CarrierID:   carrierID,
		Orders:      orders,
		PickItems:   pickItems,
		Deliveries:  deliveries,
		ReturnItems: returnItems,
		Settlement:  settlement,
		CreatedAt:   s.CreatedAt(),
	}
}

// toDomain converts a database DTO with loaded children to a session domain
// aggregate using RestoreSession.
func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	kind, err := session.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	status, err := session.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var carrierID *kernel.UUID
	if dto.CarrierID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CarrierID)[:])
		if cErr != nil {
			return nil, cErr
		}
		carrierID = &cID
	}

	memberOrderIDs := make([]kernel.UUID, 0, len(dto.Orders))
	packedOrderIDs := make([]kernel.UUID, 0)
	for _, row := range dto.Orders {
		orderID, rowErr := kernel.UUIDFromBytes(row.OrderID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		memberOrderIDs = append(memberOrderIDs, orderID)
		if row.Packed {
			packedOrderIDs = append(packedOrderIDs, orderID)
		}
	}

	pickItems := make([]*session.PickItem, 0, len(dto.PickItems))
	for _, row := range dto.PickItems {
		productID, rowErr := kernel.UUIDFromBytes(row.ProductID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		item, rowErr := session.RestorePickItem(productID, row.QuantityNeeded, row.QuantityPicked)
		if rowErr != nil {
			return nil, rowErr
		}
		pickItems = append(pickItems, item)
	}

	deliveries := make([]*session.Delivery, 0, len(dto.Deliveries))
	for _, row := range dto.Deliveries {
		orderID, rowErr := kernel.UUIDFromBytes(row.OrderID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		d, rowErr := session.RestoreDelivery(orderID, session.DeliveryResult(row.Result), row.CODCollected)
		if rowErr != nil {
			return nil, rowErr
		}
		deliveries = append(deliveries, d)
	}

	returnItems := make([]*session.ReturnItem, 0, len(dto.ReturnItems))
	for _, row := range dto.ReturnItems {
		itemID, rowErr := kernel.UUIDFromBytes(row.ID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		orderID, rowErr := kernel.UUIDFromBytes(row.OrderID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		productID, rowErr := kernel.UUIDFromBytes(row.ProductID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		item, rowErr := session.RestoreReturnItem(
			itemID, orderID, productID,
			row.OrderedQuantity, row.AcceptedQuantity, row.RejectedQuantity,
			row.RejectionReason, session.ReturnItemStatus(row.Status),
		)
		if rowErr != nil {
			return nil, rowErr
		}
		returnItems = append(returnItems, item)
	}

	var settlement *session.Settlement
	if dto.Settlement != nil {
		st, stErr := session.NewSettlement(
			id,
			dto.Settlement.TotalCODExpected,
			dto.Settlement.TotalCODCollected,
			dto.Settlement.CarrierFees,
			dto.Settlement.DiscrepancyConfirmed,
			dto.Settlement.Notes,
		)
		if stErr != nil {
			return nil, stErr
		}
		settlement = &st
	}

	return session.RestoreSession(
		id,
		kind,
		dto.Code,
		status,
		carrierID,
		memberOrderIDs,
		packedOrderIDs,
		pickItems,
		deliveries,
		returnItems,
		settlement,
		dto.CreatedAt,
	)
}
