package domain

import (
	"context"
	"time"
)

// Order-related domain errors.
var (
	ErrOrderNotFound        = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrCheckoutInFlight     = &Error{Code: ECONFLICT, Message: "A checkout is already in progress"}
	ErrOrderCreateFailed    = &Error{Code: EUNAVAILABLE, Message: "Order creation failed"}
	ErrMissingPaymentMethod = &Error{Code: EINVALID, Message: "Payment method is required"}
)

// Order statuses and payment statuses as written to the order record.
const (
	OrderStatusCompleted = "completed"
	PaymentStatusPaid    = "paid"
)

// OrderDraft is the data submitted to the order-creation collaborator when
// checkout completes. Items snapshot the cart at conversion time.
type OrderDraft struct {
	OrderNumber     string     `json:"order_number"`
	Items           []LineItem `json:"items"`
	SubtotalCents   int64      `json:"subtotal_cents"`
	TaxCents        int64      `json:"tax_cents"`
	ShippingCents   int64      `json:"shipping_cents"`
	DiscountCents   int64      `json:"discount_cents"`
	TotalCents      int64      `json:"total_cents"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	PaymentMethodID string     `json:"payment_method_id"`
	PaymentStatus   string     `json:"payment_status"`
}

// Order is a committed order record as returned by the order-creation
// collaborator.
type Order struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	Status          string    `json:"status"`
	PaymentMethodID string    `json:"payment_method_id"`
	PaymentStatus   string    `json:"payment_status"`
	SubtotalCents   int64     `json:"subtotal_cents"`
	TaxCents        int64     `json:"tax_cents"`
	ShippingCents   int64     `json:"shipping_cents"`
	DiscountCents   int64     `json:"discount_cents"`
	TotalCents      int64     `json:"total_cents"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
}

// OrderCreator is the order-creation collaborator boundary. Any rejection is
// treated as total failure of the checkout attempt; the caller must not clear
// the cart unless CreateOrder returns nil error.
type OrderCreator interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (*Order, error)
}
