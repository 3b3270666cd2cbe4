package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mocktailx/exchange/internal/store"
	"github.com/mocktailx/exchange/pkg/metrics"
	"github.com/mocktailx/exchange/pkg/models"
)

// Sweeper periodically prunes demand history and decays the price of
// drinks trading below the catalog's average recent demand.
type Sweeper struct {
	logger *zap.Logger
	drinks store.DrinkStore
	window time.Duration

	mutex     sync.Mutex
	stopChan  chan struct{}
	doneChan  chan struct{}
	isRunning bool
}

// NewSweeper creates a decay sweeper running once per window
func NewSweeper(logger *zap.Logger, drinks store.DrinkStore, window time.Duration) *Sweeper {
	return &Sweeper{
		logger: logger,
		drinks: drinks,
		window: window,
	}
}

// Start launches the background sweep loop
func (s *Sweeper) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("decay sweeper is already running")
	}

	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	go s.run()

	s.isRunning = true
	s.logger.Info("Decay sweeper started", zap.Duration("window", s.window))

	return nil
}

// Stop signals the sweep loop to exit and waits for it to drain. The
// in-flight cycle finishes its current per-drink update first; each
// update is its own atomic unit, so shutdown mid-sweep leaves every
// drink consistent.
func (s *Sweeper) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isRunning {
		return fmt.Errorf("decay sweeper is not running")
	}

	close(s.stopChan)
	<-s.doneChan

	s.isRunning = false
	s.logger.Info("Decay sweeper stopped")

	return nil
}

func (s *Sweeper) run() {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopChan:
			return
		}
	}
}

// RunOnce executes a single sweep cycle: prune every drink's history,
// average the remaining recent demand across the catalog, and knock one
// unit off every below-average drink still above its floor. Per-drink
// failures are logged and skipped so one bad record never aborts the
// rest of the sweep.
func (s *Sweeper) RunOnce(ctx context.Context) {
	now := time.Now()

	drinks, err := s.drinks.List(ctx)
	if err != nil {
		s.logger.Error("Decay sweep failed to list drinks", zap.Error(err))
		return
	}

	// Prune each drink's history and collect recent-demand counts.
	counts := make(map[string]int, len(drinks))
	for _, d := range drinks {
		name := d.Name
		_, err := s.drinks.Update(ctx, name, func(d *models.Drink) (bool, error) {
			count, changed := PruneAndCount(d, now, s.window)
			counts[name] = count
			return changed, nil
		})
		if err != nil {
			delete(counts, name)
			s.logger.Error("Decay sweep failed to prune drink",
				zap.String("drink", name), zap.Error(err))
		}
	}

	if len(counts) == 0 {
		metrics.DecayCycles.Inc()
		return
	}

	var total int
	for _, count := range counts {
		total += count
	}
	avgDemand := float64(total) / float64(len(counts))

	for name, count := range counts {
		if float64(count) >= avgDemand {
			continue
		}
		s.decay(ctx, name)
	}

	metrics.DecayCycles.Inc()
}

// decay decrements the drink's price by one, clamped at its floor. The
// floor check runs inside the atomic update so a concurrent order can
// not race the sweep below the band.
func (s *Sweeper) decay(ctx context.Context, name string) {
	applied := false
	updated, err := s.drinks.Update(ctx, name, func(d *models.Drink) (bool, error) {
		applied = false
		if !d.Price.GreaterThan(d.Floor) {
			return false, nil
		}
		d.Price = Clamp(d.Price.Sub(one), d.Floor, d.Ceiling)
		applied = true
		return true, nil
	})
	if err != nil {
		s.logger.Error("Decay sweep failed to update drink price",
			zap.String("drink", name), zap.Error(err))
		return
	}
	if !applied {
		return
	}

	metrics.DecaysApplied.WithLabelValues(name).Inc()
	metrics.CurrentPrice.WithLabelValues(name).Set(updated.Price.InexactFloat64())
	s.logger.Info("Price of drink knocked off by 1",
		zap.String("drink", name), zap.String("price", updated.Price.String()))
}
