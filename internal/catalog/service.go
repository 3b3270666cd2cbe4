package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mocktailx/exchange/internal/store"
	"github.com/mocktailx/exchange/pkg/models"
)

// CatalogService defines read-only catalog operations plus startup seeding.
type CatalogService interface {
	Seed(ctx context.Context) error
	GetPrices(ctx context.Context) (map[string]float64, error)
}

// Service implements CatalogService
type Service struct {
	logger *zap.Logger
	drinks store.DrinkStore
}

// NewService creates a new CatalogService
func NewService(logger *zap.Logger, drinks store.DrinkStore) (*Service, error) {
	if drinks == nil {
		return nil, fmt.Errorf("catalog service requires a drink store")
	}
	return &Service{logger: logger, drinks: drinks}, nil
}

// seedDrinks returns the fixed startup catalog
func seedDrinks() []*models.Drink {
	names := []string{"Kokam Spritzer", "Apple Spritzer", "Guava Spritzer"}

	base := decimal.NewFromInt(25)
	floor := decimal.NewFromInt(20)
	ceiling := decimal.NewFromInt(30)

	drinks := make([]*models.Drink, 0, len(names))
	for _, name := range names {
		drinks = append(drinks, &models.Drink{
			Name:      name,
			BasePrice: base,
			Price:     base,
			Floor:     floor,
			Ceiling:   ceiling,
			Demand:    0,
			History:   []int64{},
		})
	}
	return drinks
}

// Seed inserts the fixed catalog, skipping drinks that already exist.
// Safe to run on every startup.
func (s *Service) Seed(ctx context.Context) error {
	for _, d := range seedDrinks() {
		if err := s.drinks.Create(ctx, d); err != nil {
			return fmt.Errorf("failed to seed drink %q: %w", d.Name, err)
		}
	}
	s.logger.Info("Catalog seeded", zap.Int("drinks", len(seedDrinks())))
	return nil
}

// GetPrices returns every drink's current price rounded to two decimal
// places. Read-only point-in-time snapshot.
func (s *Service) GetPrices(ctx context.Context) (map[string]float64, error) {
	drinks, err := s.drinks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}

	prices := make(map[string]float64, len(drinks))
	for _, d := range drinks {
		prices[d.Name] = d.DisplayPrice()
	}
	return prices, nil
}
