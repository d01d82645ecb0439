// Package checkout converts the current cart into a completed order through
// the order-creation collaborator.
package checkout

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dukerupert/skadi/internal/cart"
	"github.com/dukerupert/skadi/internal/domain"
	"github.com/dukerupert/skadi/internal/events"
	"github.com/dukerupert/skadi/internal/pricing"
	"github.com/dukerupert/skadi/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Service orchestrates order conversion. At most one checkout runs at a time;
// concurrent attempts fail fast with ErrCheckoutInFlight.
type Service struct {
	engine    *cart.Engine
	pricing   *pricing.Calculator
	orders    domain.OrderCreator
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    zerolog.Logger
	currency  string

	inFlight atomic.Bool
}

// Config carries the service's collaborators. Publisher and Metrics fall back
// to working defaults when nil; Currency defaults to usd.
type Config struct {
	Engine    *cart.Engine
	Pricing   *pricing.Calculator
	Orders    domain.OrderCreator
	Publisher events.Publisher
	Metrics   *telemetry.BusinessMetrics
	Logger    zerolog.Logger
	Currency  string
}

// NewService creates a checkout service.
func NewService(cfg Config) *Service {
	if cfg.Publisher == nil {
		cfg.Publisher = events.NewNoopPublisher()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = telemetry.NewBusinessMetrics(prometheus.NewRegistry(), "")
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &Service{
		engine:    cfg.Engine,
		pricing:   cfg.Pricing,
		orders:    cfg.Orders,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		currency:  cfg.Currency,
	}
}

// CompleteOrder converts the cart into an order. Totals are recomputed from
// the live cart at the moment of conversion, never taken from a cached view.
// If the collaborator rejects the order the cart is left untouched so the
// shopper can retry; on success the active items and discount are cleared
// while saved items and the recently-viewed history survive.
func (s *Service) CompleteOrder(ctx context.Context, paymentMethodID string) (*domain.Order, error) {
	const op = "checkout.complete_order"

	s.metrics.CheckoutAttempts.Inc()

	if paymentMethodID == "" {
		s.metrics.CheckoutFailed.WithLabelValues("validation").Inc()
		return nil, domain.ErrMissingPaymentMethod
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		s.metrics.CheckoutFailed.WithLabelValues("in_flight").Inc()
		return nil, domain.ErrCheckoutInFlight
	}
	defer s.inFlight.Store(false)

	snapshot := s.engine.Snapshot()
	if len(snapshot.Items) == 0 {
		s.metrics.CheckoutFailed.WithLabelValues("empty_cart").Inc()
		return nil, domain.ErrEmptyCart
	}

	totals, err := s.pricing.Compute(ctx, snapshot.Items, snapshot.DiscountCents)
	if err != nil {
		s.metrics.CheckoutFailed.WithLabelValues("pricing").Inc()
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "failed to price order")
	}

	orderNumber, err := generateOrderNumber()
	if err != nil {
		return nil, domain.Internal(err, op, "failed to generate order number")
	}

	draft := domain.OrderDraft{
		OrderNumber:     orderNumber,
		Items:           snapshot.Items,
		SubtotalCents:   totals.SubtotalCents,
		TaxCents:        totals.TaxCents,
		ShippingCents:   totals.ShippingCents,
		DiscountCents:   totals.DiscountCents,
		TotalCents:      totals.TotalCents,
		Currency:        s.currency,
		Status:          domain.OrderStatusCompleted,
		PaymentMethodID: paymentMethodID,
		PaymentStatus:   domain.PaymentStatusPaid,
	}

	order, err := s.orders.CreateOrder(ctx, draft)
	if err != nil {
		s.metrics.CheckoutFailed.WithLabelValues("order_create").Inc()
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("order creation failed, cart preserved")
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, op, "order creation failed")
	}

	s.engine.ClearCart(ctx)

	s.metrics.CheckoutCompleted.Inc()
	s.metrics.OrderValue.Observe(float64(order.TotalCents))
	s.metrics.OrderItemCount.Observe(float64(snapshot.ItemCount()))

	event := events.OrderCompleted{
		OrderNumber: order.OrderNumber,
		TotalCents:  order.TotalCents,
		ItemCount:   snapshot.ItemCount(),
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderCompleted(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order event")
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Int64("total_cents", order.TotalCents).
		Int("item_count", snapshot.ItemCount()).
		Msg("order completed")

	return order, nil
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber returns an identifier like ORD-20260830-7K2M: the UTC
// date plus four random base36 characters. Collisions are possible but
// tolerated; the order store enforces uniqueness.
func generateOrderNumber() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	suffix := make([]byte, len(b))
	for i, v := range b {
		suffix[i] = orderNumberAlphabet[int(v)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix), nil
}
