package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocktailx/exchange/pkg/models"
)

func newDrink(name string) *models.Drink {
	return &models.Drink{
		Name:      name,
		BasePrice: decimal.NewFromInt(25),
		Price:     decimal.NewFromInt(25),
		Floor:     decimal.NewFromInt(20),
		Ceiling:   decimal.NewFromInt(30),
		History:   []int64{},
	}
}

func TestApplyOrderFirstOrderBumpsPrice(t *testing.T) {
	d := newDrink("Kokam Spritzer")

	// First order of 5 units: demand 0 -> 5, factor 0.025*(5/5).
	RecordOrder(d, 5, time.Now())
	require.Equal(t, int64(5), d.Demand)

	changed, err := ApplyOrder(d, 5)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, decimal.RequireFromString("25.625").Equal(d.Price),
		"expected 25.625, got %s", d.Price)
}

func TestApplyOrderZeroDemandIsNoOp(t *testing.T) {
	d := newDrink("Apple Spritzer")

	changed, err := ApplyOrder(d, 1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, decimal.NewFromInt(25).Equal(d.Price))
}

func TestApplyOrderFactorUsesCumulativeDemand(t *testing.T) {
	d := newDrink("Guava Spritzer")
	d.Demand = 20

	// qty 5 against cumulative demand 20: 25 * (1 + 0.025*0.25).
	changed, err := ApplyOrder(d, 5)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, decimal.RequireFromString("25.15625").Equal(d.Price),
		"expected 25.15625, got %s", d.Price)
}

func TestApplyOrderClampsAtCeiling(t *testing.T) {
	d := newDrink("Kokam Spritzer")
	d.Price = decimal.NewFromInt(30)
	d.Demand = 1

	changed, err := ApplyOrder(d, 1)
	require.NoError(t, err)
	assert.False(t, changed, "price already at ceiling should not change")
	assert.True(t, decimal.NewFromInt(30).Equal(d.Price))
}

func TestApplyOrderFactorNeverExceedsAlpha(t *testing.T) {
	// qty == demand is the largest possible ratio, so a single order can
	// never bump the price by more than 2.5%.
	for _, qty := range []int64{1, 3, 7, 100} {
		d := newDrink("Kokam Spritzer")
		d.Demand = qty

		_, err := ApplyOrder(d, qty)
		require.NoError(t, err)

		max := decimal.RequireFromString("25.625")
		assert.True(t, d.Price.LessThanOrEqual(max), "qty %d: price %s above alpha bound", qty, d.Price)
		assert.True(t, d.Price.GreaterThanOrEqual(decimal.NewFromInt(25)))
	}
}

func TestClamp(t *testing.T) {
	floor := decimal.NewFromInt(20)
	ceiling := decimal.NewFromInt(30)

	assert.True(t, floor.Equal(Clamp(decimal.NewFromInt(15), floor, ceiling)))
	assert.True(t, ceiling.Equal(Clamp(decimal.NewFromInt(35), floor, ceiling)))
	mid := decimal.RequireFromString("25.5")
	assert.True(t, mid.Equal(Clamp(mid, floor, ceiling)))
}
