package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Drink represents a catalog entry with independently tracked price,
// demand and order history
type Drink struct {
	Name      string          `json:"name" validate:"required"`
	BasePrice decimal.Decimal `json:"base"`
	Price     decimal.Decimal `json:"price"`
	Floor     decimal.Decimal `json:"floor"`
	Ceiling   decimal.Decimal `json:"ceiling"`
	// Demand is the cumulative count of ordered units since creation.
	// It never decays.
	Demand int64 `json:"demand" validate:"min=0"`
	// History holds one unix-millisecond timestamp per ordered unit,
	// in insertion (chronological) order. Pruned by the decay sweep.
	History []int64 `json:"history"`
}

// Clone returns a deep copy of the drink. Store drivers hand out clones
// so callers never share History slices with persisted state.
func (d *Drink) Clone() *Drink {
	c := *d
	c.History = make([]int64, len(d.History))
	copy(c.History, d.History)
	return &c
}

// DisplayPrice returns the price rounded to two decimal places for display
func (d *Drink) DisplayPrice() float64 {
	return d.Price.Round(2).InexactFloat64()
}

// OrderRequest represents an incoming order
type OrderRequest struct {
	Drink string `json:"drink" binding:"required"`
	Qty   int64  `json:"qty" binding:"omitempty,min=1"`
}

// OrderConfirmation describes a successfully placed order
type OrderConfirmation struct {
	ID      uuid.UUID `json:"order_id"`
	Drink   string    `json:"drink"`
	Qty     int64     `json:"qty"`
	Price   float64   `json:"price"`
	Message string    `json:"message"`
}
