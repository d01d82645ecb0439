package cartstore_test

import (
	"context"
	"testing"

	"github.com/dukerupert/skadi/internal"
	"github.com/dukerupert/skadi/internal/cartstore"
	"github.com/dukerupert/skadi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func internalCartStoreConfig(provider, dir string) internal.CartStoreConfig {
	return internal.CartStoreConfig{Provider: provider, DataDir: dir}
}

func TestLocalStore_LoadEmpty(t *testing.T) {
	store, err := cartstore.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	state, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, state.Items)
	assert.Empty(t, state.SavedItems)
	assert.Empty(t, state.RecentlyViewed)
}

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := cartstore.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	items := []domain.LineItem{
		{ID: "sku-1", Name: "House Blend", UnitPriceCents: 1800, Quantity: 2, Category: "coffee"},
	}
	saved := []domain.LineItem{
		{ID: "sku-2", Name: "Burr Grinder", UnitPriceCents: 12000, Quantity: 1, Category: "brewing"},
	}
	viewed := []domain.ProductRef{
		{ID: "p1", Name: "Ceramic Mug", PriceCents: 1800, Category: "drinkware"},
	}

	require.NoError(t, store.SaveItems(ctx, items))
	require.NoError(t, store.SaveSavedItems(ctx, saved))
	require.NoError(t, store.SaveRecentlyViewed(ctx, viewed))

	state, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, items, state.Items)
	assert.Equal(t, saved, state.SavedItems)
	assert.Equal(t, viewed, state.RecentlyViewed)
}

func TestLocalStore_SaveOverwrites(t *testing.T) {
	store, err := cartstore.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.SaveItems(ctx, []domain.LineItem{
		{ID: "sku-1", Quantity: 1, UnitPriceCents: 100},
		{ID: "sku-2", Quantity: 3, UnitPriceCents: 200},
	}))
	require.NoError(t, store.SaveItems(ctx, []domain.LineItem{
		{ID: "sku-2", Quantity: 5, UnitPriceCents: 200},
	}))

	state, err := store.Load(ctx)

	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "sku-2", state.Items[0].ID)
	assert.Equal(t, 5, state.Items[0].Quantity)
}

func TestNewStore_UnknownProvider(t *testing.T) {
	_, err := cartstore.NewStore(internalCartStoreConfig("bogus", t.TempDir()))
	assert.Error(t, err)
}

func TestNewStore_DefaultsToLocal(t *testing.T) {
	store, err := cartstore.NewStore(internalCartStoreConfig("", t.TempDir()))
	require.NoError(t, err)
	assert.IsType(t, &cartstore.LocalStore{}, store)
}
