// Package carrierrepo provides data transfer objects and mapping functions
// for carrier persistence. A carrier row owns its zone rate table.
package carrierrepo

import (
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarrierDTO represents the database structure for persisting carrier
// aggregates.
type CarrierDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Rates []ZoneRateDTO `gorm:"foreignKey:CarrierID;references:ID"`
}

// TableName overrides GORM's default naming convention to use "carriers".
func (CarrierDTO) TableName() string {
	return "carriers"
}

// ZoneRateDTO represents one per-zone delivery fee of a carrier.
type ZoneRateDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID uuid.UUID `gorm:"type:uuid;index"`
	Zone      string
	Fee       decimal.Decimal `gorm:"type:numeric"`
}

// TableName overrides GORM's default naming convention to use "carrier_zone_rates".
func (ZoneRateDTO) TableName() string {
	return "carrier_zone_rates"
}

// fromDomain converts a carrier domain aggregate to its database
// representation, including the zone rate child rows.
func fromDomain(c *carrier.Carrier) CarrierDTO {
	rates := make([]ZoneRateDTO, 0, len(c.Rates()))
	for _, rate := range c.Rates() {
		rates = append(rates, ZoneRateDTO{
			ID:        rate.ID().Bytes(),
			CarrierID: c.ID().Bytes(),
			Zone:      rate.Zone(),
			Fee:       rate.Fee(),
		})
	}

	return CarrierDTO{
		ID:    c.ID().Bytes(),
		Name:  c.Name(),
		Rates: rates,
	}
}

// toDomain converts a database DTO to a carrier domain aggregate.
func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	rates := make([]*carrier.ZoneRate, 0, len(dto.Rates))
	for _, rateDTO := range dto.Rates {
		rateID, rateErr := kernel.UUIDFromBytes(rateDTO.ID[:])
		if rateErr != nil {
			return nil, rateErr
		}

		rate, rateErr := carrier.NewZoneRate(rateID, rateDTO.Zone, rateDTO.Fee)
		if rateErr != nil {
			return nil, rateErr
		}
		rates = append(rates, rate)
	}

	return carrier.RestoreCarrier(id, dto.Name, rates)
}
