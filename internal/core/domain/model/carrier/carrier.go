// Package carrier provides the Carrier aggregate: the delivery company a
// dispatch session hands orders to, together with its per-zone fee table used
// by settlement.
package carrier

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrCarrierIsNotConstructed is returned when a Carrier was not created
	// through the NewCarrier or RestoreCarrier factory methods.
	ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")

	// ErrNameIsRequired is returned when creating a carrier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrZoneRateNotFound is returned when no rate covers the requested zone
	// and the carrier has no default rate.
	ErrZoneRateNotFound = errors.New("no rate for zone")
)

// defaultZone is the catch-all key of the rate table.
const defaultZone = "default"

// ZoneRate is one row of the carrier's fee table: the fee charged per
// delivered order in a zone.
type ZoneRate struct {
	id   kernel.UUID
	zone string
	fee  decimal.Decimal
}

// NewZoneRate creates a fee table row. The zone key is case-insensitive.
func NewZoneRate(id kernel.UUID, zone string, fee decimal.Decimal) (*ZoneRate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if zone == "" {
		return nil, errs.NewValueIsRequiredError("zone")
	}
	if fee.IsNegative() {
		return nil, errs.NewValueIsInvalidError("fee must not be negative")
	}

	return &ZoneRate{id: id, zone: strings.ToLower(zone), fee: fee}, nil
}

// ID returns the rate row's unique identifier.
func (z *ZoneRate) ID() kernel.UUID {
	return z.id
}

// Zone returns the normalized zone key.
func (z *ZoneRate) Zone() string {
	return z.zone
}

// Fee returns the per-order fee for the zone.
func (z *ZoneRate) Fee() decimal.Decimal {
	return z.fee
}

// Carrier is the aggregate root for a delivery company. The zone rate table is
// the source of the carrier_fees component of a dispatch settlement.
type Carrier struct {
	id    kernel.UUID
	name  string
	rates []*ZoneRate

	guard guard.ConstructorGuard
}

// NewCarrier creates a carrier with its fee table.
func NewCarrier(id kernel.UUID, name string, rates []*ZoneRate) (*Carrier, error) {
	c := &Carrier{
		guard: guard.NewConstructorGuard(),
	}

	if err := c.setID(id); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	c.name = name
	c.rates = rates
	return c, nil
}

// RestoreCarrier reconstructs a carrier from persistent storage.
func RestoreCarrier(id kernel.UUID, name string, rates []*ZoneRate) (*Carrier, error) {
	return NewCarrier(id, name, rates)
}

// Validate ensures the carrier was created through a factory method.
func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// ID returns the carrier's unique identifier.
func (c *Carrier) ID() kernel.UUID {
	return c.id
}

// Name returns the carrier name.
func (c *Carrier) Name() string {
	return c.name
}

// Rates returns the fee table rows.
func (c *Carrier) Rates() []*ZoneRate {
	return c.rates
}

// FeeForZone returns the per-order fee for the given zone, falling back to the
// "default" row when the zone has no dedicated rate.
func (c *Carrier) FeeForZone(zone string) (decimal.Decimal, error) {
	zone = strings.ToLower(zone)

	var fallback *ZoneRate
	for _, rate := range c.rates {
		if rate.zone == zone {
			return rate.fee, nil
		}
		if rate.zone == defaultZone {
			fallback = rate
		}
	}

	if fallback != nil {
		return fallback.fee, nil
	}
	return decimal.Zero, errs.NewObjectNotFoundErrorWithCause("zone", zone, ErrZoneRateNotFound)
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}
