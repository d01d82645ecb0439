// Package catalog supplies the product pool the recommendation engine draws
// from. The engine only needs a flat list of products; where that list comes
// from (a static seed, a merchandising service) is the provider's business.
package catalog

import (
	"context"

	"github.com/dukerupert/skadi/internal/domain"
)

// Provider returns the candidate products for recommendations.
type Provider interface {
	Products(ctx context.Context) ([]domain.ProductRef, error)
}
