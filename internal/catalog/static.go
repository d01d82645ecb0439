package catalog

import (
	"context"

	"github.com/dukerupert/skadi/internal/domain"
)

// StaticProvider serves a fixed product list compiled into the binary.
type StaticProvider struct {
	products []domain.ProductRef
}

// NewStaticProvider creates a provider over the given products. With no
// products it falls back to the built-in seed catalog.
func NewStaticProvider(products []domain.ProductRef) *StaticProvider {
	if len(products) == 0 {
		products = seedProducts
	}
	return &StaticProvider{products: products}
}

// Products returns a copy of the product list.
func (p *StaticProvider) Products(ctx context.Context) ([]domain.ProductRef, error) {
	out := make([]domain.ProductRef, len(p.products))
	copy(out, p.products)
	return out, nil
}

// seedProducts is the default demo catalog.
var seedProducts = []domain.ProductRef{
	{ID: "prod-001", Name: "House Blend", PriceCents: 1800, Category: "coffee"},
	{ID: "prod-002", Name: "Single Origin Ethiopia", PriceCents: 2200, Category: "coffee"},
	{ID: "prod-003", Name: "Decaf Colombia", PriceCents: 1900, Category: "coffee"},
	{ID: "prod-004", Name: "Espresso Roast", PriceCents: 2000, Category: "coffee"},
	{ID: "prod-005", Name: "Ceramic Pour-Over Dripper", PriceCents: 2800, Category: "brewing"},
	{ID: "prod-006", Name: "Gooseneck Kettle", PriceCents: 6500, Category: "brewing"},
	{ID: "prod-007", Name: "Burr Grinder", PriceCents: 12000, Category: "brewing"},
	{ID: "prod-008", Name: "Paper Filters (100ct)", PriceCents: 900, Category: "brewing"},
	{ID: "prod-009", Name: "Double-Wall Glass Mug", PriceCents: 1600, Category: "drinkware"},
	{ID: "prod-010", Name: "Travel Tumbler", PriceCents: 2400, Category: "drinkware"},
	{ID: "prod-011", Name: "Stoneware Mug", PriceCents: 1400, Category: "drinkware"},
	{ID: "prod-012", Name: "Canvas Tote", PriceCents: 1200, Category: "merch"},
}
