package session

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created
	// through the NewSession or RestoreSession factory methods.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

	// ErrOrdersNotEligible is returned when a member order is not in the
	// source status the session kind requires (picking: CONFIRMED, dispatch:
	// READY_TO_SHIP, return: DELIVERED or SHIPPED).
	ErrOrdersNotEligible = errors.New("orders are not eligible for this session kind")

	// ErrOrderAlreadyInSession is returned when an order already belongs to an
	// active session of the same kind. The check-and-claim is atomic; exactly
	// one of two racing creators wins a contested order.
	ErrOrderAlreadyInSession = errors.New("order already belongs to an active session of this kind")

	// ErrPickingIncomplete is returned when completing picking while some
	// product still has picked < needed.
	ErrPickingIncomplete = errors.New("picked quantities do not match needed quantities")

	// ErrOrderNotInSession is returned when an operation references an order
	// that is not a member of the session.
	ErrOrderNotInSession = errors.New("order is not a member of this session")

	// ErrReturnItemNotFound is returned when resolving an unknown return item.
	ErrReturnItemNotFound = errors.New("return item not found")
)

// Session is the aggregate root generalizing the three batch operations
// (picking, dispatch, return) over an exclusively reserved set of orders.
//
// Invariants:
//   - member orders were eligible for the kind at creation time
//   - membership is disjoint from every other active session of the same kind
//     (enforced by the reservation claim in the same transaction)
//   - a terminal session (COMPLETED / SETTLED / CANCELLED) never changes again
//
// Side effects on orders and stock are orchestrated by the application layer;
// the aggregate only guards its own machine and child state.
type Session struct {
	id             kernel.UUID
	kind           Kind
	code           string
	status         Status
	carrierID      *kernel.UUID
	memberOrderIDs []kernel.UUID
	packedOrderIDs []kernel.UUID
	pickItems      []*PickItem
	deliveries     []*Delivery
	returnItems    []*ReturnItem
	settlement     *Settlement
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewSession reserves the given orders into a fresh session of the given kind.
// Fails with ErrOrdersNotEligible if any order is not in the kind-required
// source status. Builds the kind-specific child state: pick items aggregated
// per product (picking), pending deliveries (dispatch) or pending return items
// per line item (return).
func NewSession(id kernel.UUID, kind Kind, code string, orders []*order.Order) (*Session, error) {
	s := &Session{
		status:    StatusCreated,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(s.setID(id), kind.Validate(), s.setCode(code)); err != nil {
		return nil, err
	}
	s.kind = kind

	if len(orders) == 0 {
		return nil, errs.NewValueIsRequiredError("orders")
	}

	seen := make(map[kernel.UUID]bool, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if seen[o.ID()] {
			return nil, errs.NewValueIsInvalidErrorWithCause("orders",
				fmt.Errorf("order %s listed twice", o.ID()))
		}
		seen[o.ID()] = true

		if !kind.IsEligibleSource(o.Status()) {
			return nil, fmt.Errorf("%w: order %s is %s", ErrOrdersNotEligible, o.ID(), o.Status())
		}
		s.memberOrderIDs = append(s.memberOrderIDs, o.ID())
	}

	if err := s.buildChildren(orders); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSession reconstructs a session aggregate from persistent storage.
func RestoreSession(
	id kernel.UUID,
	kind Kind,
	code string,
	status Status,
	carrierID *kernel.UUID,
	memberOrderIDs []kernel.UUID,
	packedOrderIDs []kernel.UUID,
	pickItems []*PickItem,
	deliveries []*Delivery,
	returnItems []*ReturnItem,
	settlement *Settlement,
	createdAt time.Time,
) (*Session, error) {
	s := &Session{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(s.setID(id), kind.Validate(), s.setCode(code), status.Validate()); err != nil {
		return nil, err
	}
	if len(memberOrderIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("member order ids")
	}
	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return nil, err
		}
	}

	s.kind = kind
	s.status = status
	s.carrierID = carrierID
	s.memberOrderIDs = memberOrderIDs
	s.packedOrderIDs = packedOrderIDs
	s.pickItems = pickItems
	s.deliveries = deliveries
	s.returnItems = returnItems
	s.settlement = settlement
	return s, nil
}

func (s *Session) buildChildren(orders []*order.Order) error {
	switch s.kind {
	case KindPicking:
		needed := make(map[kernel.UUID]int)
		var productOrder []kernel.UUID
		for _, o := range orders {
			for _, li := range o.LineItems() {
				if _, ok := needed[li.ProductID()]; !ok {
					productOrder = append(productOrder, li.ProductID())
				}
				needed[li.ProductID()] += li.Quantity()
			}
		}
		for _, productID := range productOrder {
			item, err := NewPickItem(productID, needed[productID])
			if err != nil {
				return err
			}
			s.pickItems = append(s.pickItems, item)
		}

	case KindDispatch:
		for _, o := range orders {
			d, err := NewDelivery(o.ID())
			if err != nil {
				return err
			}
			s.deliveries = append(s.deliveries, d)
		}

	case KindReturn:
		for _, o := range orders {
			for _, li := range o.LineItems() {
				item, err := NewReturnItem(kernel.NewUUID(), o.ID(), li.ProductID(), li.Quantity())
				if err != nil {
					return err
				}
				s.returnItems = append(s.returnItems, item)
			}
		}
	}
	return nil
}

// Validate ensures the session was created through a factory method.
func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// ID returns the session's unique identifier.
func (s *Session) ID() kernel.UUID {
	return s.id
}

// Kind returns the session kind.
func (s *Session) Kind() Kind {
	return s.kind
}

// Code returns the human-readable session code ({PREFIX}-{DDMMYYYY}-{NN|NNN}).
func (s *Session) Code() string {
	return s.code
}

// Status returns the current session status.
func (s *Session) Status() Status {
	return s.status
}

// CarrierID returns the carrier of a dispatch session, nil otherwise.
func (s *Session) CarrierID() *kernel.UUID {
	return s.carrierID
}

// MemberOrderIDs returns the reserved order set.
func (s *Session) MemberOrderIDs() []kernel.UUID {
	return s.memberOrderIDs
}

// PackedOrderIDs returns the member orders already packed (picking only).
func (s *Session) PackedOrderIDs() []kernel.UUID {
	return s.packedOrderIDs
}

// PickItems returns the per-product pick trackers (picking only).
func (s *Session) PickItems() []*PickItem {
	return s.pickItems
}

// Deliveries returns the per-order delivery trackers (dispatch only).
func (s *Session) Deliveries() []*Delivery {
	return s.deliveries
}

// ReturnItems returns the per-line-item return trackers (return only).
func (s *Session) ReturnItems() []*ReturnItem {
	return s.returnItems
}

// Settlement returns the recorded settlement, nil until settled.
func (s *Session) Settlement() *Settlement {
	return s.settlement
}

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// IsMember reports whether the order belongs to this session.
func (s *Session) IsMember(orderID kernel.UUID) bool {
	for _, id := range s.memberOrderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// AssignCarrier sets the carrier of a dispatch session before dispatch.
func (s *Session) AssignCarrier(carrierID kernel.UUID) error {
	if err := s.require(KindDispatch, StatusCreated); err != nil {
		return err
	}
	if err := carrierID.Validate(); err != nil {
		return err
	}

	s.carrierID = &carrierID
	return nil
}

// RecordPick sets the absolute picked quantity for a product of an open
// picking session.
func (s *Session) RecordPick(productID kernel.UUID, quantity int) error {
	if err := s.require(KindPicking, StatusCreated); err != nil {
		return err
	}

	for _, item := range s.pickItems {
		if item.ProductID().IsEqual(productID) {
			return item.record(quantity)
		}
	}
	return errs.NewObjectNotFoundError("product", productID.String())
}

// CompletePicking moves a picking session to Packing.
// Requires picked == needed for every product.
func (s *Session) CompletePicking() error {
	if err := s.require(KindPicking, StatusCreated); err != nil {
		return err
	}

	for _, item := range s.pickItems {
		if !item.IsComplete() {
			return fmt.Errorf("%w: product %s has %d of %d",
				ErrPickingIncomplete, item.ProductID(), item.QuantityPicked(), item.QuantityNeeded())
		}
	}

	s.status = StatusPacking
	return nil
}

// MarkOrderPacked records packing completion of one member order.
// Returns true when this was the last unpacked order; the session then moves
// to Completed. The caller transitions the order to READY_TO_SHIP (with its
// stock decrement) in the same unit of work.
func (s *Session) MarkOrderPacked(orderID kernel.UUID) (bool, error) {
	if err := s.require(KindPicking, StatusPacking); err != nil {
		return false, err
	}
	if !s.IsMember(orderID) {
		return false, fmt.Errorf("%w: %s", ErrOrderNotInSession, orderID)
	}

	for _, id := range s.packedOrderIDs {
		if id.IsEqual(orderID) {
			return false, errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("order %s is already packed", orderID))
		}
	}

	s.packedOrderIDs = append(s.packedOrderIDs, orderID)
	if len(s.packedOrderIDs) == len(s.memberOrderIDs) {
		s.status = StatusCompleted
		return true, nil
	}
	return false, nil
}

// Dispatch moves a dispatch session from Created to Dispatched.
// The caller bulk-transitions every member order to SHIPPED alongside.
func (s *Session) Dispatch() error {
	if err := s.require(KindDispatch, StatusCreated); err != nil {
		return err
	}

	s.status = StatusDispatched
	return nil
}

// RecordDeliveryResult stores one imported courier result for a member order
// of a dispatched session.
func (s *Session) RecordDeliveryResult(orderID kernel.UUID, result DeliveryResult, codCollected decimal.Decimal) error {
	if err := s.require(KindDispatch, StatusDispatched); err != nil {
		return err
	}
	if err := result.Validate(); err != nil {
		return err
	}
	if result == DeliveryPending {
		return errs.NewValueIsInvalidError("imported result cannot be pending")
	}
	if codCollected.IsNegative() {
		return errs.NewValueIsInvalidError("collected COD must not be negative")
	}

	for _, d := range s.deliveries {
		if d.orderID.IsEqual(orderID) {
			d.result = result
			d.codCollected = codCollected
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOrderNotInSession, orderID)
}

// BeginProcessing moves a dispatch session from Dispatched to Processing once
// delivery results were imported.
func (s *Session) BeginProcessing() error {
	if err := s.require(KindDispatch, StatusDispatched); err != nil {
		return err
	}

	s.status = StatusProcessing
	return nil
}

// Settle records the reconciliation result and moves the session to Settled.
// A non-zero discrepancy must be explicitly confirmed.
func (s *Session) Settle(settlement Settlement) error {
	if err := s.require(KindDispatch, StatusProcessing); err != nil {
		return err
	}

	if !settlement.Discrepancy().IsZero() && !settlement.DiscrepancyConfirmed() {
		return fmt.Errorf("%w: discrepancy is %s", ErrUnconfirmedDiscrepancy, settlement.Discrepancy())
	}

	s.settlement = &settlement
	s.status = StatusSettled
	return nil
}

// ResolveReturnItem applies an accept/reject/partial resolution to one return
// item of an open return session.
func (s *Session) ResolveReturnItem(
	itemID kernel.UUID,
	status ReturnItemStatus,
	accepted, rejected int,
	reason string,
) error {
	if err := s.require(KindReturn, StatusCreated); err != nil {
		return err
	}

	for _, item := range s.returnItems {
		if item.ID().IsEqual(itemID) {
			return item.resolve(status, accepted, rejected, reason)
		}
	}
	return fmt.Errorf("%w: %s", ErrReturnItemNotFound, itemID)
}

// CompleteReturn moves a return session to Completed. The caller restores the
// accepted quantities and marks the member orders RETURNED in the same unit of
// work; pending items restore nothing.
func (s *Session) CompleteReturn() error {
	if err := s.require(KindReturn, StatusCreated); err != nil {
		return err
	}

	s.status = StatusCompleted
	return nil
}

// Cancel aborts the session and releases its reservations.
// Allowed from Created for every kind, from Packing for picking and from
// Dispatched for dispatch (the caller then reverts member orders to
// READY_TO_SHIP).
func (s *Session) Cancel() error {
	allowed := s.status == StatusCreated ||
		(s.kind == KindPicking && s.status == StatusPacking) ||
		(s.kind == KindDispatch && s.status == StatusDispatched)
	if !allowed {
		return fmt.Errorf("%w: cannot cancel %s session in status %s", ErrInvalidSessionTransition, s.kind, s.status)
	}

	s.status = StatusCancelled
	return nil
}

// IsTerminal reports whether the session reached a terminal status.
func (s *Session) IsTerminal() bool {
	return s.status.IsTerminal()
}

func (s *Session) require(kind Kind, status Status) error {
	if s.kind != kind {
		return fmt.Errorf("%w: operation requires a %s session, got %s", ErrInvalidSessionTransition, kind, s.kind)
	}
	if s.status != status {
		return fmt.Errorf("%w: operation requires status %s, session is %s", ErrInvalidSessionTransition, status, s.status)
	}
	return nil
}

func (s *Session) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Session) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	s.code = code
	return nil
}
