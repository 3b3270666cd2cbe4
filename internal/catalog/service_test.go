package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mocktailx/exchange/internal/store"
	"github.com/mocktailx/exchange/pkg/models"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	drinks := store.NewMemoryStore()
	svc, err := NewService(zaptest.NewLogger(t), drinks)
	require.NoError(t, err)
	return svc, drinks
}

func TestSeedCreatesFixedCatalog(t *testing.T) {
	svc, drinks := newTestService(t)

	require.NoError(t, svc.Seed(context.Background()))

	all, err := drinks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	for _, d := range all {
		assert.True(t, decimal.NewFromInt(25).Equal(d.Price))
		assert.True(t, decimal.NewFromInt(20).Equal(d.Floor))
		assert.True(t, decimal.NewFromInt(30).Equal(d.Ceiling))
		assert.Equal(t, int64(0), d.Demand)
		assert.Empty(t, d.History)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, drinks := newTestService(t)

	require.NoError(t, svc.Seed(context.Background()))

	// Mutate one record, then re-seed: the mutation must survive.
	_, err := drinks.Update(context.Background(), "Kokam Spritzer", func(d *models.Drink) (bool, error) {
		d.Demand = 7
		d.Price = decimal.RequireFromString("26.5")
		return true, nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.Seed(context.Background()))

	d, err := drinks.Get(context.Background(), "Kokam Spritzer")
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.Demand)
	assert.True(t, decimal.RequireFromString("26.5").Equal(d.Price))

	all, err := drinks.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetPricesRoundsToTwoDecimals(t *testing.T) {
	svc, drinks := newTestService(t)
	require.NoError(t, svc.Seed(context.Background()))

	_, err := drinks.Update(context.Background(), "Kokam Spritzer", func(d *models.Drink) (bool, error) {
		d.Price = decimal.RequireFromString("25.625")
		return true, nil
	})
	require.NoError(t, err)

	prices, err := svc.GetPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, 25.63, prices["Kokam Spritzer"])
	assert.Equal(t, 25.0, prices["Apple Spritzer"])
}

func TestGetPricesEmptyCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	prices, err := svc.GetPrices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prices)
}
