package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mocktailx/exchange/pkg/models"
)

// alpha scales the demand-driven price bump per order. With the order's
// own quantity already counted in the drink's cumulative demand, the
// resulting factor is bounded to (0, alpha].
var alpha = decimal.NewFromFloat(0.025)

var one = decimal.NewFromInt(1)

// ErrPriceOutOfBand reports a computed price outside [floor, ceiling]
// after clamping. Clamping makes this unreachable; seeing it means a
// logic error, so callers treat it as fatal.
var ErrPriceOutOfBand = errors.New("price outside floor/ceiling band")

// ApplyOrder recomputes the drink's price after an order of qty units.
// The order must already be counted in d.Demand. Returns true when the
// price changed and should be persisted. Zero demand is a no-op.
func ApplyOrder(d *models.Drink, qty int64) (bool, error) {
	if d.Demand <= 0 {
		return false, nil
	}

	factor := alpha.Mul(decimal.NewFromInt(qty)).Div(decimal.NewFromInt(d.Demand))
	newPrice := Clamp(d.Price.Mul(one.Add(factor)), d.Floor, d.Ceiling)

	if newPrice.LessThan(d.Floor) || newPrice.GreaterThan(d.Ceiling) {
		return false, fmt.Errorf("drink %q price %s: %w", d.Name, newPrice, ErrPriceOutOfBand)
	}

	if newPrice.Equal(d.Price) {
		return false, nil
	}
	d.Price = newPrice
	return true, nil
}

// Clamp bounds price to [floor, ceiling]
func Clamp(price, floor, ceiling decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(price, floor), ceiling)
}
