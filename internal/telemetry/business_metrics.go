package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Cart activity
	CartUpdates       *prometheus.CounterVec
	CartValue         prometheus.Histogram
	SavedForLater     prometheus.Counter
	RecentlyViewedAdd prometheus.Counter

	// Discounts
	DiscountApplied  *prometheus.CounterVec
	DiscountRejected prometheus.Counter

	// Checkout funnel
	CheckoutAttempts  prometheus.Counter
	CheckoutCompleted prometheus.Counter
	CheckoutFailed    *prometheus.CounterVec
	OrderValue        prometheus.Histogram
	OrderItemCount    prometheus.Histogram

	// Recommendations
	RecommendationsServed prometheus.Counter

	// Persistence
	PersistenceFailures *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics against reg.
func NewBusinessMetrics(reg prometheus.Registerer, namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "skadi"
	}

	subsystem := "business"
	factory := promauto.With(reg)

	return &BusinessMetrics{
		CartUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_updates_total",
				Help:      "Total cart mutations",
			},
			[]string{"action"}, // action: add, remove, update_quantity, clear, save_for_later, move_to_cart
		),
		CartValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_value_cents",
				Help:      "Cart subtotal in cents after each mutation",
				Buckets:   prometheus.ExponentialBuckets(500, 2, 12),
			},
		),
		SavedForLater: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "saved_for_later_total",
				Help:      "Total items moved to the saved list",
			},
		),
		RecentlyViewedAdd: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recently_viewed_total",
				Help:      "Total products recorded as recently viewed",
			},
		),
		DiscountApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "discount_applied_total",
				Help:      "Total accepted discount codes",
			},
			[]string{"code"},
		),
		DiscountRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "discount_rejected_total",
				Help:      "Total rejected discount codes",
			},
		),
		CheckoutAttempts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_attempts_total",
				Help:      "Total checkout attempts",
			},
		),
		CheckoutCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_completed_total",
				Help:      "Total successful checkouts",
			},
		),
		CheckoutFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_failed_total",
				Help:      "Total failed checkouts",
			},
			[]string{"reason"}, // reason: validation, empty_cart, in_flight, pricing, order_create
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_cents",
				Help:      "Completed order total in cents",
				Buckets:   prometheus.ExponentialBuckets(500, 2, 12),
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of units per completed order",
				Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
			},
		),
		RecommendationsServed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recommendations_served_total",
				Help:      "Total recommendation lists computed",
			},
		),
		PersistenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "persistence_failures_total",
				Help:      "Total background cart persistence failures",
			},
			[]string{"key"}, // key: items, saved_items, recently_viewed
		),
	}
}
