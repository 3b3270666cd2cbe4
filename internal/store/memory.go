package store

import (
	"context"
	"sync"

	"github.com/mocktailx/exchange/pkg/models"
)

// MemoryStore is an in-process DrinkStore with the same per-drink
// update semantics as the Redis driver. Used by tests and as a
// standalone driver when no Redis is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	drinks map[string]*models.Drink
}

// NewMemoryStore creates an empty in-memory DrinkStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drinks: make(map[string]*models.Drink)}
}

// List returns a point-in-time snapshot of every drink
func (s *MemoryStore) List(ctx context.Context) ([]*models.Drink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	drinks := make([]*models.Drink, 0, len(s.drinks))
	for _, d := range s.drinks {
		drinks = append(drinks, d.Clone())
	}
	return drinks, nil
}

// Get returns the drink with the given name
func (s *MemoryStore) Get(ctx context.Context, name string) (*models.Drink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drinks[name]
	if !ok {
		return nil, ErrDrinkNotFound
	}
	return d.Clone(), nil
}

// Create inserts the drink if absent; existing records are untouched
func (s *MemoryStore) Create(ctx context.Context, d *models.Drink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drinks[d.Name]; ok {
		return nil
	}
	s.drinks[d.Name] = d.Clone()
	return nil
}

// Update applies mutate to the named drink under the store lock
func (s *MemoryStore) Update(ctx context.Context, name string, mutate MutateFunc) (*models.Drink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.drinks[name]
	if !ok {
		return nil, ErrDrinkNotFound
	}

	d := current.Clone()
	changed, err := mutate(d)
	if err != nil {
		return nil, err
	}
	if changed {
		s.drinks[name] = d
	}
	return d.Clone(), nil
}
