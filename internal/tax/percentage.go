package tax

import (
	"context"
	"math"

	"github.com/dukerupert/skadi/internal/domain"
)

// PercentageCalculator calculates tax using a simple percentage rate.
// Shipping is not taxed; the rate applies to line item totals only.
type PercentageCalculator struct {
	rate float64 // e.g., 0.10 for 10%
}

// NewPercentageCalculator creates a new percentage-based tax calculator.
// The rate must be in [0, 1).
func NewPercentageCalculator(rate float64) (Calculator, error) {
	if rate < 0 || rate >= 1 {
		return nil, domain.Invalid("tax.new", "tax rate must be in [0, 1)")
	}
	return &PercentageCalculator{rate: rate}, nil
}

// CalculateTax computes tax on the line item subtotal using the configured rate.
func (c *PercentageCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	var subtotal int64
	for _, li := range params.LineItems {
		subtotal += li.TotalPriceCents
	}

	return &TaxResult{
		TotalTaxCents: int64(math.Round(float64(subtotal) * c.rate)),
		Rate:          c.rate,
	}, nil
}
