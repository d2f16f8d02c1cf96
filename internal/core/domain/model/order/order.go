package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how an order is paid.
// Cash orders are collected by the courier at delivery time (COD) and are the
// ones reconciled during settlement.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Validate checks the payment method against the known set.
func (p PaymentMethod) Validate() error {
	switch p {
	case PaymentCash, PaymentCard, PaymentBankTransfer:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not a known payment method", string(p)))
}

// IsCOD reports whether payment is collected on delivery.
func (p PaymentMethod) IsCOD() bool {
	return p == PaymentCash
}

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLineItemsAreRequired is returned when creating an order without line items.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("line items")

	// ErrRecipientIsRequired is returned when creating an order without a recipient name.
	ErrRecipientIsRequired = errs.NewValueIsRequiredError("recipient")
)

// Recipient holds the delivery contact details printed on the courier hand-off
// manifest. All fields except Name are optional.
type Recipient struct {
	Name    string
	Phone   string
	Address string
	Zone    string
	MapLink string
	Notes   string
}

// Order is the aggregate root of the fulfillment lifecycle. It owns the status
// state machine and the immutable line item collection fixed at creation.
//
// Invariants:
//   - status is always a node of the transition graph
//   - line items never change after construction
//   - Returned can only be entered through MarkReturned (return processor)
//   - total price = sum of line item subtotals + shipping cost
//
// Stock is never mutated here; the inventory ledger reacts to specific edges
// and the two commit together in one unit of work.
type Order struct {
	id            kernel.UUID
	status        Status
	customerID    kernel.UUID
	carrierID     *kernel.UUID
	paymentMethod PaymentMethod
	shippingCost  decimal.Decimal
	totalPrice    decimal.Decimal
	recipient     Recipient
	lineItems     []*LineItem
	createdAt     time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a freshly placed order in Pending status.
// The total price is derived from the line items plus shipping cost.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	paymentMethod PaymentMethod,
	shippingCost decimal.Decimal,
	recipient Recipient,
	lineItems []*LineItem,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPaymentMethod(paymentMethod),
		o.setShippingCost(shippingCost),
		o.setRecipient(recipient),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	o.totalPrice = o.computeTotal()
	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistent storage,
// preserving its persisted status, carrier assignment and total.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	customerID kernel.UUID,
	carrierID *kernel.UUID,
	paymentMethod PaymentMethod,
	shippingCost decimal.Decimal,
	totalPrice decimal.Decimal,
	recipient Recipient,
	lineItems []*LineItem,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		status.Validate(),
		o.setCustomerID(customerID),
		o.setPaymentMethod(paymentMethod),
		o.setShippingCost(shippingCost),
		o.setRecipient(recipient),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return nil, err
		}
		o.carrierID = carrierID
	}

	o.status = status
	o.totalPrice = totalPrice
	return o, nil
}

// Validate ensures the order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CarrierID returns the assigned carrier, nil when unassigned.
func (o *Order) CarrierID() *kernel.UUID {
	return o.carrierID
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// ShippingCost returns the shipping cost charged to the customer.
func (o *Order) ShippingCost() decimal.Decimal {
	return o.shippingCost
}

// TotalPrice returns the order total including shipping.
// For cash orders this is the COD amount the courier collects.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// Recipient returns the delivery contact details.
func (o *Order) Recipient() Recipient {
	return o.recipient
}

// LineItems returns the ordered line item sequence.
func (o *Order) LineItems() []*LineItem {
	return o.lineItems
}

// CreatedAt returns the order placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TransitionTo performs a direct status transition request.
// Fails with ErrInvalidStatus for unknown targets and ErrInvalidTransition for
// disallowed edges; the order is unchanged on failure. Stock side effects of
// the edge are applied by the caller through the inventory ledger within the
// same unit of work.
func (o *Order) TransitionTo(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReturned moves the order to Returned. Only the return processor calls
// this; it is valid from Delivered or Shipped.
func (o *Order) MarkReturned() error {
	if o.status != Delivered && o.status != Shipped {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, Returned)
	}

	o.status = Returned
	return nil
}

// ResetToReadyToShip reverts a shipped order back to ReadyToShip.
// Used exclusively when a dispatch session is cancelled after dispatch; the
// reservation release and this revert commit together.
func (o *Order) ResetToReadyToShip() error {
	if o.status != Shipped {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, ReadyToShip)
	}

	o.status = ReadyToShip
	return nil
}

// AssignCarrier sets the carrier handling the order's dispatch.
func (o *Order) AssignCarrier(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	o.carrierID = &carrierID
	return nil
}

// QuantityOf returns the ordered quantity of a product summed over line items.
func (o *Order) QuantityOf(productID kernel.UUID) int {
	total := 0
	for _, li := range o.lineItems {
		if li.ProductID().IsEqual(productID) {
			total += li.Quantity()
		}
	}
	return total
}

func (o *Order) computeTotal() decimal.Decimal {
	total := o.shippingCost
	for _, li := range o.lineItems {
		total = total.Add(li.Subtotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setShippingCost(shippingCost decimal.Decimal) error {
	if shippingCost.IsNegative() {
		return errs.NewValueIsInvalidError("shipping cost must not be negative")
	}
	o.shippingCost = shippingCost
	return nil
}

func (o *Order) setRecipient(recipient Recipient) error {
	if recipient.Name == "" {
		return ErrRecipientIsRequired
	}
	o.recipient = recipient
	return nil
}

func (o *Order) setLineItems(lineItems []*LineItem) error {
	if len(lineItems) == 0 {
		return ErrLineItemsAreRequired
	}

	for _, li := range lineItems {
		if err := li.Validate(); err != nil {
			return err
		}
	}

	o.lineItems = lineItems
	return nil
}
