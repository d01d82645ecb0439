package shipping

import (
	"context"
	"time"
)

// Provider defines the interface for shipping rate quotes.
// Implementations can integrate with carriers; the engine ships with a
// flat-rate provider.
type Provider interface {
	// GetRates returns available shipping options for the cart,
	// cheapest first.
	GetRates(ctx context.Context, params RateParams) ([]Rate, error)
}

// RateParams describes the cart being quoted.
type RateParams struct {
	ItemCount     int
	SubtotalCents int64
}

// Rate represents a shipping rate option.
type Rate struct {
	RateID                string
	Carrier               string
	ServiceName           string
	ServiceCode           string
	CostCents             int64
	EstimatedDaysMin      int
	EstimatedDaysMax      int
	EstimatedDeliveryDate time.Time
}
