package store

import (
	"context"
	"errors"

	"github.com/mocktailx/exchange/pkg/models"
)

// ErrDrinkNotFound is returned when an operation references a drink
// that is not in the catalog. Callers treat it as a soft failure.
var ErrDrinkNotFound = errors.New("drink not found")

// ErrConflict is returned when an atomic update loses the race too many
// times in a row. It indicates contention, not corruption.
var ErrConflict = errors.New("drink update conflict")

// MutateFunc modifies a drink in place during an atomic update. It
// returns true when the change should be persisted; returning false
// leaves the stored record untouched.
type MutateFunc func(d *models.Drink) (bool, error)

// DrinkStore is the persistence boundary for drink records. Each drink
// is an independent document; Update serializes the read-modify-write
// cycle per drink so concurrent orders never lose each other's writes.
type DrinkStore interface {
	// List returns a point-in-time snapshot of every drink.
	List(ctx context.Context) ([]*models.Drink, error)

	// Get returns the drink with the given name, or ErrDrinkNotFound.
	Get(ctx context.Context, name string) (*models.Drink, error)

	// Create inserts the drink if no record with its name exists.
	// Existing records are left untouched, making seeding idempotent.
	Create(ctx context.Context, d *models.Drink) error

	// Update applies mutate to the named drink atomically and returns
	// the resulting state. Returns ErrDrinkNotFound for unknown names;
	// errors from mutate abort the update and propagate unchanged.
	Update(ctx context.Context, name string, mutate MutateFunc) (*models.Drink, error)
}
