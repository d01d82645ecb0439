package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dukerupert/skadi/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderService implements domain.OrderCreator using PostgreSQL.
type OrderService struct {
	pool *pgxpool.Pool
}

// Compile-time check that OrderService implements domain.OrderCreator.
var _ domain.OrderCreator = (*OrderService)(nil)

// NewOrderService creates a new PostgreSQL-backed order service.
func NewOrderService(pool *pgxpool.Pool) *OrderService {
	return &OrderService{pool: pool}
}

// CreateOrder inserts the order and its line items in a single transaction.
func (s *OrderService) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	const op = "order.create"

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	orderID := uuid.New()
	createdAt := time.Now().UTC()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, order_number, status, payment_method_id, payment_status,
			subtotal_cents, tax_cents, shipping_cents, discount_cents, total_cents,
			currency, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		orderID, draft.OrderNumber, draft.Status, draft.PaymentMethodID, draft.PaymentStatus,
		draft.SubtotalCents, draft.TaxCents, draft.ShippingCents, draft.DiscountCents, draft.TotalCents,
		draft.Currency, createdAt,
	)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to insert order")
	}

	for _, item := range draft.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, product_name, category, note,
				quantity, unit_price_cents, total_price_cents
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New(), orderID, item.ID, item.Name, item.Category, item.Note,
			item.Quantity, item.UnitPriceCents, item.LineSubtotal(),
		)
		if err != nil {
			return nil, domain.Internal(err, op, fmt.Sprintf("failed to insert order item %s", item.ID))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Internal(err, op, "failed to commit transaction")
	}

	order := &domain.Order{
		ID:              orderID.String(),
		OrderNumber:     draft.OrderNumber,
		Status:          draft.Status,
		PaymentMethodID: draft.PaymentMethodID,
		PaymentStatus:   draft.PaymentStatus,
		SubtotalCents:   draft.SubtotalCents,
		TaxCents:        draft.TaxCents,
		ShippingCents:   draft.ShippingCents,
		DiscountCents:   draft.DiscountCents,
		TotalCents:      draft.TotalCents,
		Currency:        draft.Currency,
		CreatedAt:       createdAt,
	}
	return order, nil
}
