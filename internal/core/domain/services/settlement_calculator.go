package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/session"

	"github.com/shopspring/decimal"
)

// SettlementCalculator derives the reconciliation figures for a dispatch
// session from its imported delivery results:
//
//	expected  = sum of order totals over delivered cash orders
//	collected = sum of courier-reported COD over delivered orders
//	fees      = sum of the carrier's zone fee over delivered orders
//
// Failed and pending deliveries contribute to none of the three.
type SettlementCalculator struct{}

// NewSettlementCalculator creates the settlement calculator domain service.
func NewSettlementCalculator() *SettlementCalculator {
	return &SettlementCalculator{}
}

// Calculate builds the settlement for the session. The orders slice must cover
// every member order; the carrier is the one the session dispatched with.
func (c *SettlementCalculator) Calculate(
	sess *session.Session,
	orders []*order.Order,
	car *carrier.Carrier,
	discrepancyConfirmed bool,
	notes string,
) (session.Settlement, error) {
	if err := sess.Validate(); err != nil {
		return session.Settlement{}, err
	}
	if err := car.Validate(); err != nil {
		return session.Settlement{}, err
	}

	byID := make(map[kernel.UUID]*order.Order, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return session.Settlement{}, err
		}
		byID[o.ID()] = o
	}

	expected := decimal.Zero
	collected := decimal.Zero
	fees := decimal.Zero

	for _, d := range sess.Deliveries() {
		if d.Result() != session.DeliveryDelivered {
			continue
		}

		o, ok := byID[d.OrderID()]
		if !ok {
			return session.Settlement{}, fmt.Errorf("%w: %s", session.ErrOrderNotInSession, d.OrderID())
		}

		if o.PaymentMethod().IsCOD() {
			expected = expected.Add(o.TotalPrice())
		}
		collected = collected.Add(d.CODCollected())

		fee, err := car.FeeForZone(o.Recipient().Zone)
		if err != nil {
			return session.Settlement{}, err
		}
		fees = fees.Add(fee)
	}

	return session.NewSettlement(sess.ID(), expected, collected, fees, discrepancyConfirmed, notes)
}
