package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrdersPlaced counts successfully placed orders by drink
var OrdersPlaced = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mocktail_orders_placed_total",
		Help: "Total number of orders placed, by drink",
	},
	[]string{"drink"},
)

// OrdersRejected counts orders rejected because the drink is unknown
var OrdersRejected = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "mocktail_orders_rejected_total",
		Help: "Total number of orders for drinks not in the catalog",
	},
)

// OrderLatency records latency distribution for order processing
var OrderLatency = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "mocktail_order_processing_latency_seconds",
		Help:    "Latency in seconds to process individual orders",
		Buckets: prometheus.DefBuckets,
	},
)

// Decay sweep metrics
var (
	DecayCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mocktail_decay_cycles_total",
			Help: "Total number of completed decay sweep cycles",
		},
	)

	DecaysApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mocktail_decays_applied_total",
			Help: "Total number of price decrements applied by the decay sweep",
		},
		[]string{"drink"},
	)

	CurrentPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mocktail_current_price",
			Help: "Current price per drink",
		},
		[]string{"drink"},
	)
)

func init() {
	prometheus.MustRegister(OrdersPlaced, OrdersRejected, OrderLatency)
	prometheus.MustRegister(DecayCycles, DecaysApplied, CurrentPrice)
}
