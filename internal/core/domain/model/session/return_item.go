package session

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrQuantityExceedsOrdered is returned when accepted plus rejected
	// quantities of a return item exceed the ordered quantity.
	ErrQuantityExceedsOrdered = errors.New("accepted and rejected quantities exceed ordered quantity")

	// ErrRejectionReasonIsRequired is returned when rejecting units without a reason.
	ErrRejectionReasonIsRequired = errs.NewValueIsRequiredError("rejection reason")
)

// ReturnItemStatus is the resolution state of one returned line item.
type ReturnItemStatus string

const (
	ReturnItemPending  ReturnItemStatus = "pending"
	ReturnItemAccepted ReturnItemStatus = "accepted"
	ReturnItemRejected ReturnItemStatus = "rejected"
	ReturnItemPartial  ReturnItemStatus = "partial"
)

// Validate checks the status against the known set.
func (s ReturnItemStatus) Validate() error {
	switch s {
	case ReturnItemPending, ReturnItemAccepted, ReturnItemRejected, ReturnItemPartial:
		return nil
	}
	return fmt.Errorf("%q is not a known return item status", string(s))
}

// ReturnItem is a child entity of a return session tracking the accept/reject
// resolution of one ordered line item.
//
// Invariant: accepted + rejected <= ordered. Only the accepted quantity ever
// restores stock when the session completes.
type ReturnItem struct {
	id               kernel.UUID
	orderID          kernel.UUID
	productID        kernel.UUID
	orderedQuantity  int
	acceptedQuantity int
	rejectedQuantity int
	rejectionReason  string
	status           ReturnItemStatus
}

// NewReturnItem creates a pending return item for one ordered line item.
func NewReturnItem(id, orderID, productID kernel.UUID, orderedQuantity int) (*ReturnItem, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if orderedQuantity <= 0 {
		return nil, errs.NewValueIsInvalidError("ordered quantity must be greater than 0")
	}

	return &ReturnItem{
		id:              id,
		orderID:         orderID,
		productID:       productID,
		orderedQuantity: orderedQuantity,
		status:          ReturnItemPending,
	}, nil
}

// RestoreReturnItem reconstructs a return item from persistent storage.
func RestoreReturnItem(
	id, orderID, productID kernel.UUID,
	orderedQuantity, acceptedQuantity, rejectedQuantity int,
	rejectionReason string,
	status ReturnItemStatus,
) (*ReturnItem, error) {
	item, err := NewReturnItem(id, orderID, productID, orderedQuantity)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if acceptedQuantity+rejectedQuantity > orderedQuantity {
		return nil, ErrQuantityExceedsOrdered
	}

	item.acceptedQuantity = acceptedQuantity
	item.rejectedQuantity = rejectedQuantity
	item.rejectionReason = rejectionReason
	item.status = status
	return item, nil
}

// ID returns the return item's unique identifier.
func (r *ReturnItem) ID() kernel.UUID {
	return r.id
}

// OrderID returns the member order the item belongs to.
func (r *ReturnItem) OrderID() kernel.UUID {
	return r.orderID
}

// ProductID returns the returned product.
func (r *ReturnItem) ProductID() kernel.UUID {
	return r.productID
}

// OrderedQuantity returns the quantity originally ordered.
func (r *ReturnItem) OrderedQuantity() int {
	return r.orderedQuantity
}

// AcceptedQuantity returns the quantity accepted back into stock.
func (r *ReturnItem) AcceptedQuantity() int {
	return r.acceptedQuantity
}

// RejectedQuantity returns the quantity rejected; it never restores stock.
func (r *ReturnItem) RejectedQuantity() int {
	return r.rejectedQuantity
}

// RejectionReason returns why units were rejected, empty when none were.
func (r *ReturnItem) RejectionReason() string {
	return r.rejectionReason
}

// Status returns the resolution state.
func (r *ReturnItem) Status() ReturnItemStatus {
	return r.status
}

// resolve applies an accept/reject/partial resolution.
//
// Rules:
//   - accepted + rejected must not exceed the ordered quantity
//   - accepted resolution carries no rejected units, rejected carries no
//     accepted units, partial carries both
//   - any rejected units require a reason
func (r *ReturnItem) resolve(status ReturnItemStatus, accepted, rejected int, reason string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if accepted < 0 || rejected < 0 {
		return errs.NewValueIsInvalidError("quantities must not be negative")
	}
	if accepted+rejected > r.orderedQuantity {
		return fmt.Errorf("%w: %d + %d > %d for item %s",
			ErrQuantityExceedsOrdered, accepted, rejected, r.orderedQuantity, r.id)
	}

	switch status {
	case ReturnItemAccepted:
		if accepted == 0 || rejected != 0 {
			return errs.NewValueIsInvalidError("accepted resolution must carry accepted units only")
		}
	case ReturnItemRejected:
		if rejected == 0 || accepted != 0 {
			return errs.NewValueIsInvalidError("rejected resolution must carry rejected units only")
		}
	case ReturnItemPartial:
		if accepted == 0 || rejected == 0 {
			return errs.NewValueIsInvalidError("partial resolution must carry both accepted and rejected units")
		}
	case ReturnItemPending:
		return errs.NewValueIsInvalidError("cannot resolve an item back to pending")
	}

	if rejected > 0 && reason == "" {
		return ErrRejectionReasonIsRequired
	}

	r.status = status
	r.acceptedQuantity = accepted
	r.rejectedQuantity = rejected
	r.rejectionReason = reason
	return nil
}
