package carrier_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCarrier(t *testing.T, zones map[string]string) *carrier.Carrier {
	t.Helper()
	rates := make([]*carrier.ZoneRate, 0, len(zones))
	for zone, fee := range zones {
		rate, err := carrier.NewZoneRate(kernel.NewUUID(), zone, decimal.RequireFromString(fee))
		require.NoError(t, err)
		rates = append(rates, rate)
	}

	c, err := carrier.NewCarrier(kernel.NewUUID(), "Meteor Express", rates)
	require.NoError(t, err)
	return c
}

func TestNewCarrier(t *testing.T) {
	t.Run("requires name", func(t *testing.T) {
		_, err := carrier.NewCarrier(kernel.NewUUID(), "", nil)
		require.ErrorIs(t, err, carrier.ErrNameIsRequired)
	})

	t.Run("empty rate table is allowed", func(t *testing.T) {
		_, err := carrier.NewCarrier(kernel.NewUUID(), "Meteor Express", nil)
		require.NoError(t, err)
	})
}

func TestNewZoneRate_Validation(t *testing.T) {
	_, err := carrier.NewZoneRate(kernel.NewUUID(), "", decimal.Zero)
	require.Error(t, err)

	_, err = carrier.NewZoneRate(kernel.NewUUID(), "downtown", decimal.NewFromInt(-1))
	require.Error(t, err)
}

func TestFeeForZone(t *testing.T) {
	c := newTestCarrier(t, map[string]string{
		"downtown": "2.50",
		"suburbs":  "4.00",
		"default":  "5.00",
	})

	t.Run("exact zone", func(t *testing.T) {
		fee, err := c.FeeForZone("downtown")
		require.NoError(t, err)
		assert.True(t, fee.Equal(decimal.RequireFromString("2.50")))
	})

	t.Run("zone lookup is case-insensitive", func(t *testing.T) {
		fee, err := c.FeeForZone("Suburbs")
		require.NoError(t, err)
		assert.True(t, fee.Equal(decimal.RequireFromString("4.00")))
	})

	t.Run("falls back to default", func(t *testing.T) {
		fee, err := c.FeeForZone("airport")
		require.NoError(t, err)
		assert.True(t, fee.Equal(decimal.RequireFromString("5.00")))
	})

	t.Run("unknown zone without default fails", func(t *testing.T) {
		noDefault := newTestCarrier(t, map[string]string{"downtown": "2.50"})
		_, err := noDefault.FeeForZone("airport")
		require.Error(t, err)
	})
}
