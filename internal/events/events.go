package events

import (
	"context"
	"time"
)

// NATS subjects for engine events.
const (
	SubjectCartUpdated    = "cart.updated"
	SubjectOrderCompleted = "order.completed"
)

// CartUpdated is published after every cart mutation.
type CartUpdated struct {
	EventID       string    `json:"event_id"`
	Action        string    `json:"action"` // add, remove, update_quantity, clear, ...
	ItemCount     int       `json:"item_count"`
	SubtotalCents int64     `json:"subtotal_cents"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// OrderCompleted is published after a successful checkout.
type OrderCompleted struct {
	EventID     string    `json:"event_id"`
	OrderNumber string    `json:"order_number"`
	TotalCents  int64     `json:"total_cents"`
	ItemCount   int       `json:"item_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher emits engine events for downstream consumers (analytics,
// fulfillment dashboards). Publishing is best-effort: failures are logged by
// implementations and never affect engine state.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, event CartUpdated) error
	PublishOrderCompleted(ctx context.Context, event OrderCompleted) error

	// Close releases the underlying connection, if any.
	Close()
}
