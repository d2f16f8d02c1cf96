package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.True(t, q.OrderID().IsEqual(id))

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetOrderQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetOrdersQuery(t *testing.T) {
	q, err := queries.NewGetOrdersQuery("")
	require.NoError(t, err)
	assert.Empty(t, q.Status())

	q, err = queries.NewGetOrdersQuery("READY_TO_SHIP")
	require.NoError(t, err)
	assert.Equal(t, "READY_TO_SHIP", q.Status())

	_, err = queries.NewGetOrdersQuery("NOT_A_STATUS")
	require.Error(t, err)
}

func TestNewGetProductQuery(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewGetProductQuery(id)
	require.NoError(t, err)
	assert.True(t, q.ProductID().IsEqual(id))

	_, err = queries.NewGetProductQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetProductMovementsQuery(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewGetProductMovementsQuery(id)
	require.NoError(t, err)
	assert.True(t, q.ProductID().IsEqual(id))

	_, err = queries.NewGetProductMovementsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetSessionQuery(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewGetSessionQuery(id)
	require.NoError(t, err)
	assert.True(t, q.SessionID().IsEqual(id))

	var zero queries.GetSessionQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetSessionQueryIsNotConstructed)
}

func TestNewGetDispatchManifestQuery(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewGetDispatchManifestQuery(id)
	require.NoError(t, err)
	assert.True(t, q.SessionID().IsEqual(id))

	_, err = queries.NewGetDispatchManifestQuery(kernel.UUID{})
	require.Error(t, err)
}
