package pricing

import (
	"time"

	"github.com/mocktailx/exchange/pkg/models"
)

// RecordOrder appends qty timestamped entries to the drink's history
// and bumps its cumulative demand counter, as one logical update. The
// caller persists the drink afterwards.
func RecordOrder(d *models.Drink, qty int64, now time.Time) {
	ts := now.UnixMilli()
	for i := int64(0); i < qty; i++ {
		d.History = append(d.History, ts)
	}
	d.Demand += qty
}

// PruneAndCount drops history entries at least window old relative to
// now and returns the remaining count (the drink's recent demand) plus
// whether the history changed. Surviving entries keep their order; the
// cumulative demand counter is not touched.
func PruneAndCount(d *models.Drink, now time.Time, window time.Duration) (int, bool) {
	cutoff := now.Add(-window).UnixMilli()

	kept := d.History[:0]
	for _, t := range d.History {
		if t > cutoff {
			kept = append(kept, t)
		}
	}

	changed := len(kept) != len(d.History)
	d.History = kept
	return len(kept), changed
}
