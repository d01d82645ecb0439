package pricing

import (
	"context"
	"fmt"

	"github.com/dukerupert/skadi/internal/domain"
	"github.com/dukerupert/skadi/internal/shipping"
	"github.com/dukerupert/skadi/internal/tax"
)

// Totals is the breakdown of a cart's cost at a point in time.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// Calculator computes cart totals through the tax and shipping boundaries.
// It holds no mutable state; Compute is deterministic for fixed providers.
type Calculator struct {
	taxCalc          tax.Calculator
	shippingProvider shipping.Provider
}

// NewCalculator creates a pricing calculator.
func NewCalculator(taxCalc tax.Calculator, shippingProvider shipping.Provider) *Calculator {
	return &Calculator{
		taxCalc:          taxCalc,
		shippingProvider: shippingProvider,
	}
}

// Compute derives tax, shipping and total from the given line items and the
// already-applied discount amount. An empty cart costs nothing: no tax and no
// shipping charge. The total is subtotal + tax + shipping - discount and is
// deliberately not clamped at zero.
func (c *Calculator) Compute(ctx context.Context, items []domain.LineItem, discountCents int64) (*Totals, error) {
	var subtotal int64
	itemCount := 0
	for _, li := range items {
		subtotal += li.LineSubtotal()
		itemCount += li.Quantity
	}

	if subtotal == 0 {
		return &Totals{DiscountCents: discountCents, TotalCents: -discountCents}, nil
	}

	taxItems := make([]tax.LineItem, len(items))
	for i, li := range items {
		taxItems[i] = tax.LineItem{
			ProductID:       li.ID,
			Description:     li.Name,
			Quantity:        li.Quantity,
			UnitPriceCents:  li.UnitPriceCents,
			TotalPriceCents: li.LineSubtotal(),
		}
	}

	taxResult, err := c.taxCalc.CalculateTax(ctx, tax.TaxParams{LineItems: taxItems})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tax: %w", err)
	}

	rates, err := c.shippingProvider.GetRates(ctx, shipping.RateParams{
		ItemCount:     itemCount,
		SubtotalCents: subtotal,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get shipping rates: %w", err)
	}
	var shippingCents int64
	if len(rates) > 0 {
		shippingCents = rates[0].CostCents
	}

	return &Totals{
		SubtotalCents: subtotal,
		TaxCents:      taxResult.TotalTaxCents,
		ShippingCents: shippingCents,
		DiscountCents: discountCents,
		TotalCents:    subtotal + taxResult.TotalTaxCents + shippingCents - discountCents,
	}, nil
}
