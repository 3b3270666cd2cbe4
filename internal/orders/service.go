package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mocktailx/exchange/internal/pricing"
	"github.com/mocktailx/exchange/internal/store"
	"github.com/mocktailx/exchange/pkg/metrics"
	"github.com/mocktailx/exchange/pkg/models"
)

// OrderService defines order placement operations.
type OrderService interface {
	PlaceOrder(ctx context.Context, drinkName string, qty int64) (*models.OrderConfirmation, error)
}

// Service implements OrderService
type Service struct {
	logger *zap.Logger
	drinks store.DrinkStore
}

// NewService creates a new OrderService
func NewService(logger *zap.Logger, drinks store.DrinkStore) (*Service, error) {
	if drinks == nil {
		return nil, fmt.Errorf("order service requires a drink store")
	}
	return &Service{logger: logger, drinks: drinks}, nil
}

// PlaceOrder records qty units of demand against the named drink and
// recomputes its price. Recording and repricing run inside a single
// per-drink atomic update, so two racing orders both land in the
// demand counter and neither price write is lost. Unknown drinks
// return store.ErrDrinkNotFound with no state change.
func (s *Service) PlaceOrder(ctx context.Context, drinkName string, qty int64) (*models.OrderConfirmation, error) {
	if qty < 1 {
		return nil, fmt.Errorf("order quantity must be at least 1, got %d", qty)
	}

	start := time.Now()

	updated, err := s.drinks.Update(ctx, drinkName, func(d *models.Drink) (bool, error) {
		pricing.RecordOrder(d, qty, time.Now())
		if _, err := pricing.ApplyOrder(d, qty); err != nil {
			return false, err
		}
		// History and demand changed even when the price clamped in
		// place, so the record is always persisted.
		return true, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrDrinkNotFound) {
			metrics.OrdersRejected.Inc()
			return nil, err
		}
		return nil, fmt.Errorf("failed to place order for %q: %w", drinkName, err)
	}

	metrics.OrdersPlaced.WithLabelValues(drinkName).Add(float64(qty))
	metrics.CurrentPrice.WithLabelValues(drinkName).Set(updated.Price.InexactFloat64())
	metrics.OrderLatency.Observe(time.Since(start).Seconds())

	s.logger.Info("Order placed",
		zap.String("drink", drinkName),
		zap.Int64("qty", qty),
		zap.Int64("demand", updated.Demand),
		zap.String("price", updated.Price.String()))

	return &models.OrderConfirmation{
		ID:      uuid.New(),
		Drink:   drinkName,
		Qty:     qty,
		Price:   updated.DisplayPrice(),
		Message: fmt.Sprintf("Order placed for %d %s(s)", qty, drinkName),
	}, nil
}
