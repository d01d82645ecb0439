package recommend_test

import (
	"testing"

	"github.com/dukerupert/skadi/internal/domain"
	"github.com/dukerupert/skadi/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolFixture() []domain.ProductRef {
	return []domain.ProductRef{
		{ID: "p1", Name: "Pour Over Kettle", PriceCents: 4500, Category: "brewing"},
		{ID: "p2", Name: "Burr Grinder", PriceCents: 12000, Category: "brewing"},
		{ID: "p3", Name: "Ceramic Mug", PriceCents: 1800, Category: "drinkware"},
		{ID: "p4", Name: "Travel Tumbler", PriceCents: 2600, Category: "drinkware"},
		{ID: "p5", Name: "Ethiopia Yirgacheffe", PriceCents: 1900, Category: "coffee"},
		{ID: "p6", Name: "Colombia Supremo", PriceCents: 1700, Category: "coffee"},
	}
}

func TestRecommend_EmptyCartFallsBackToPoolOrder(t *testing.T) {
	engine := recommend.NewEngine()

	result := engine.Recommend(nil, poolFixture())

	require.Len(t, result, 4)
	assert.Equal(t, "p1", result[0].ID)
	assert.Equal(t, "p2", result[1].ID)
	assert.Equal(t, "p3", result[2].ID)
	assert.Equal(t, "p4", result[3].ID)
}

func TestRecommend_EmptyCartSmallPool(t *testing.T) {
	engine := recommend.NewEngine()
	pool := poolFixture()[:2]

	result := engine.Recommend(nil, pool)

	assert.Len(t, result, 2)
}

func TestRecommend_CategoryAndPriceScoring(t *testing.T) {
	engine := recommend.NewEngine()

	// Cart: one coffee at 1800 cents. Category set {coffee}, average 1800.
	items := []domain.LineItem{
		{ID: "c1", Name: "House Blend", UnitPriceCents: 1800, Quantity: 1, Category: "coffee"},
	}

	result := engine.Recommend(items, poolFixture())

	require.Len(t, result, 4)
	// p5 (coffee, 1900: +5 +3 = 8) and p6 (coffee, 1700: +5 +3 = 8) lead in
	// pool order; p3 (drinkware, 1800: +3) follows; the zero-score remainder
	// keeps pool order, so p1 takes the last slot.
	assert.Equal(t, "p5", result[0].ID)
	assert.Equal(t, "p6", result[1].ID)
	assert.Equal(t, "p3", result[2].ID)
	assert.Equal(t, "p1", result[3].ID)
}

func TestRecommend_ExcludesProductsAlreadyInCart(t *testing.T) {
	engine := recommend.NewEngine()

	// p5 is in the cart and a perfect score candidate; it must never appear.
	items := []domain.LineItem{
		{ID: "p5", Name: "Ethiopia Yirgacheffe", UnitPriceCents: 1900, Quantity: 3, Category: "coffee"},
	}

	result := engine.Recommend(items, poolFixture())

	require.Len(t, result, 4)
	for _, p := range result {
		assert.NotEqual(t, "p5", p.ID, "in-cart products must be excluded")
	}
}

func TestRecommend_AveragePriceIsUnweighted(t *testing.T) {
	engine := recommend.NewEngine()

	// Quantities are ignored for the average: (1000 + 3000) / 2 = 2000,
	// regardless of the 99 cheap units.
	items := []domain.LineItem{
		{ID: "c1", UnitPriceCents: 1000, Quantity: 99, Category: "accessories"},
		{ID: "c2", UnitPriceCents: 3000, Quantity: 1, Category: "accessories"},
	}
	pool := []domain.ProductRef{
		{ID: "p1", PriceCents: 2000, Category: "other"}, // within band of 2000
		{ID: "p2", PriceCents: 1000, Category: "other"}, // below 0.7 * 2000
	}

	result := engine.Recommend(items, pool)

	require.Len(t, result, 2)
	assert.Equal(t, "p1", result[0].ID, "price band should use the unweighted average")
}

func TestRecommend_Deterministic(t *testing.T) {
	engine := recommend.NewEngine()
	items := []domain.LineItem{
		{ID: "c1", UnitPriceCents: 1800, Quantity: 2, Category: "coffee"},
	}

	first := engine.Recommend(items, poolFixture())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Recommend(items, poolFixture()))
	}
}
