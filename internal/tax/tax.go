package tax

import (
	"context"
)

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator, MockCalculator.
type Calculator interface {
	// CalculateTax computes tax for the given line items.
	// Returns the tax amount in cents.
	CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error)
}

// TaxParams contains all information needed for tax calculation.
type TaxParams struct {
	LineItems     []LineItem
	ShippingCents int64
}

// LineItem represents a single item being taxed.
type LineItem struct {
	ProductID       string
	Description     string
	Quantity        int
	UnitPriceCents  int64
	TotalPriceCents int64
}

// TaxResult contains the calculated tax amount.
type TaxResult struct {
	TotalTaxCents int64
	Rate          float64
	IsEstimate    bool
}
