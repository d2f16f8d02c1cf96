package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "PENDING", order.Pending.String())
	assert.Equal(t, "IN_PREPARATION", order.InPreparation.String())
	assert.Equal(t, "READY_TO_SHIP", order.ReadyToShip.String())
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every node", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.InPreparation, order.ReadyToShip,
			order.Shipped, order.Delivered, order.Cancelled, order.Returned,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("unknown value fails", func(t *testing.T) {
		_, err := order.StatusFromString("SOMEWHERE")
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestStatusTransitionGraph(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:       {order.Confirmed, order.Cancelled},
		order.Confirmed:     {order.InPreparation, order.Cancelled},
		order.InPreparation: {order.ReadyToShip, order.Cancelled},
		order.ReadyToShip:   {order.Shipped, order.Cancelled},
		order.Shipped:       {order.Delivered, order.Cancelled},
		order.Delivered:     {},
		order.Cancelled:     {},
		order.Returned:      {},
	}

	all := []order.Status{
		order.Pending, order.Confirmed, order.InPreparation, order.ReadyToShip,
		order.Shipped, order.Delivered, order.Cancelled, order.Returned,
	}

	for from, targets := range allowed {
		edges := make(map[order.Status]bool, len(targets))
		for _, to := range targets {
			edges[to] = true
		}

		for _, to := range all {
			got, err := from.TransitionTo(to)
			if edges[to] {
				require.NoError(t, err, "%s -> %s must be allowed", from, to)
				assert.Equal(t, to, got)
			} else {
				require.ErrorIs(t, err, order.ErrInvalidTransition, "%s -> %s must be rejected", from, to)
			}
		}
	}
}

func TestStatusTransitionTo_SkippingEdgeFails(t *testing.T) {
	_, err := order.Pending.TransitionTo(order.Shipped)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestStatusTransitionTo_UnknownTargetFails(t *testing.T) {
	_, err := order.Pending.TransitionTo(order.Status(42))
	require.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Returned.IsTerminal())
	assert.False(t, order.Shipped.IsTerminal())
	assert.False(t, order.Status(42).IsTerminal())
}
