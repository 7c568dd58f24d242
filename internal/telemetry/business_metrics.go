package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability
// of the ordering funnel.
type BusinessMetrics struct {
	// Basket funnel
	BasketsCreated  *prometheus.CounterVec
	BasketUpdated   *prometheus.CounterVec
	PizzasAdded     *prometheus.CounterVec
	BasketItemCount *prometheus.HistogramVec

	// Coupons
	CouponsApplied  *prometheus.CounterVec
	CouponsRejected *prometheus.CounterVec
	CouponsRemoved  *prometheus.CounterVec

	// Orders
	OrdersPlaced    *prometheus.CounterVec
	OrdersCancelled *prometheus.CounterVec
	OrderValue      *prometheus.HistogramVec

	// Pickup time selection
	PickupTimeSet      *prometheus.CounterVec
	PickupTimeRejected *prometheus.CounterVec

	// Peer service calls
	PeerCallLatency *prometheus.HistogramVec
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "ordering"
	}

	subsystem := "business"

	m := &BusinessMetrics{
		BasketsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "baskets_created_total",
				Help:      "Total baskets created",
			},
			[]string{},
		),
		BasketUpdated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "basket_updated_total",
				Help:      "Total basket update operations",
			},
			[]string{"action"}, // action: add, remove, set_time, set_store
		),
		PizzasAdded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pizzas_added_total",
				Help:      "Total pizzas added to baskets",
			},
			[]string{"source"}, // source: menu, custom
		),
		BasketItemCount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "basket_item_count",
				Help:      "Number of pizzas per basket at checkout",
				Buckets:   []float64{1, 2, 3, 5, 8, 12},
			},
			[]string{},
		),

		CouponsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_applied_total",
				Help:      "Total coupons attached to baskets",
			},
			[]string{"type"}, // type: percentage, buy_one_get_one, other
		),
		CouponsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_rejected_total",
				Help:      "Total coupon applications rejected",
			},
			[]string{"reason"}, // reason: malformed, not_found, duplicate, not_cheaper
		),
		CouponsRemoved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_removed_total",
				Help:      "Total coupons removed from baskets",
			},
			[]string{},
		),

		OrdersPlaced: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_placed_total",
				Help:      "Total orders placed at checkout",
			},
			[]string{},
		),
		OrdersCancelled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_cancelled_total",
				Help:      "Total orders cancelled",
			},
			[]string{},
		),
		OrderValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_euros",
				Help:      "Order value distribution",
				Buckets:   []float64{5, 10, 15, 20, 30, 50, 75, 100},
			},
			[]string{},
		),

		PickupTimeSet: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pickup_time_set_total",
				Help:      "Total pickup times accepted",
			},
			[]string{"day"}, // day: today, tomorrow
		),
		PickupTimeRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pickup_time_rejected_total",
				Help:      "Total pickup times rejected",
			},
			[]string{"reason"}, // reason: past, out_of_range, empty_basket
		),

		PeerCallLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "peer_call_duration_seconds",
				Help:      "Customer and store service call duration",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"service", "operation"}, // service: customer, store
		),
	}

	return m
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
