package recommend

import (
	"sort"

	"github.com/dukerupert/skadi/internal/domain"
)

// Limit is the number of recommendations returned.
const Limit = 4

// Scoring weights. A candidate already in the cart is disqualified outright.
const (
	categoryMatchScore = 5
	priceBandScore     = 3
	priceBandLow       = 0.7
	priceBandHigh      = 1.3
)

// Engine ranks catalog candidates against the current cart contents.
// Recommend is pure and deterministic: identical cart and pool inputs always
// yield identical output.
type Engine struct{}

// NewEngine creates a recommendation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Recommend returns up to Limit candidates ranked for the given cart.
//
// An empty cart falls back to the first candidates in pool order (the pool is
// expected to be popularity-ordered by the catalog). Otherwise candidates are
// scored by category overlap and proximity to the cart's average unit price,
// and products already in the cart are excluded regardless of score. Ties keep
// pool order.
func (e *Engine) Recommend(items []domain.LineItem, pool []domain.ProductRef) []domain.ProductRef {
	if len(items) == 0 {
		if len(pool) <= Limit {
			return append([]domain.ProductRef(nil), pool...)
		}
		return append([]domain.ProductRef(nil), pool[:Limit]...)
	}

	inCart := make(map[string]bool, len(items))
	categories := make(map[string]bool, len(items))
	var priceSum int64
	for _, li := range items {
		inCart[li.ID] = true
		if li.Category != "" {
			categories[li.Category] = true
		}
		priceSum += li.UnitPriceCents
	}
	// Unweighted mean across distinct line items; quantity does not factor in.
	avgPrice := float64(priceSum) / float64(len(items))

	type scored struct {
		product domain.ProductRef
		score   int
	}

	candidates := make([]scored, 0, len(pool))
	for _, p := range pool {
		if inCart[p.ID] {
			continue
		}

		score := 0
		if categories[p.Category] {
			score += categoryMatchScore
		}
		if avgPrice > 0 {
			ratio := float64(p.PriceCents) / avgPrice
			if ratio >= priceBandLow && ratio <= priceBandHigh {
				score += priceBandScore
			}
		}

		candidates = append(candidates, scored{product: p, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := len(candidates)
	if n > Limit {
		n = Limit
	}
	result := make([]domain.ProductRef, n)
	for i := 0; i < n; i++ {
		result[i] = candidates[i].product
	}
	return result
}
