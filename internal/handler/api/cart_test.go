package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/skadi/internal/cart"
	"github.com/dukerupert/skadi/internal/checkout"
	"github.com/dukerupert/skadi/internal/domain"
	"github.com/dukerupert/skadi/internal/handler/api"
	"github.com/dukerupert/skadi/internal/pricing"
	"github.com/dukerupert/skadi/internal/shipping"
	"github.com/dukerupert/skadi/internal/tax"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderCreator struct {
	err error
}

func (s *stubOrderCreator) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{
		ID:          "order-1",
		OrderNumber: draft.OrderNumber,
		Status:      draft.Status,
		TotalCents:  draft.TotalCents,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *cart.Engine) {
	t.Helper()

	taxCalc, err := tax.NewPercentageCalculator(0.10)
	require.NoError(t, err)
	shippingProvider := shipping.NewFlatRateProvider([]shipping.FlatRate{
		{ServiceName: "Standard", ServiceCode: "standard", CostCents: 500, DaysMin: 3, DaysMax: 7},
	})
	calc := pricing.NewCalculator(taxCalc, shippingProvider)

	engine := cart.NewEngine(context.Background(), cart.Config{})
	svc := checkout.NewService(checkout.Config{
		Engine:  engine,
		Pricing: calc,
		Orders:  &stubOrderCreator{},
	})

	e := echo.New()
	e.Validator = api.NewValidator()
	h := api.NewHandler(engine, calc, svc, zerolog.Nop())
	h.RegisterRoutes(e.Group("/api"))

	return e, engine
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAddItem(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/cart/items",
		`{"id":"sku-1","name":"House Blend","unit_price_cents":1800,"quantity":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, int64(3600), resp.SubtotalCents)
}

func TestAddItem_MissingID(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/cart/items", `{"name":"No ID","unit_price_cents":100}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	e, engine := newTestServer(t)
	engine.AddItem(context.Background(), domain.LineItem{ID: "sku-1", Name: "X", UnitPriceCents: 100, Quantity: 2})

	rec := doJSON(e, http.MethodPatch, "/api/cart/items/sku-1", `{"quantity":0}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestSaveForLaterAndMoveBack(t *testing.T) {
	e, engine := newTestServer(t)
	engine.AddItem(context.Background(), domain.LineItem{ID: "sku-1", Name: "X", UnitPriceCents: 100, Quantity: 1})

	rec := doJSON(e, http.MethodPost, "/api/cart/items/sku-1/save", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Len(t, resp.SavedItems, 1)

	rec = doJSON(e, http.MethodPost, "/api/cart/saved/sku-1/move", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Empty(t, resp.SavedItems)
}

func TestApplyDiscount(t *testing.T) {
	e, engine := newTestServer(t)
	engine.AddItem(context.Background(), domain.LineItem{ID: "sku-1", Name: "X", UnitPriceCents: 5000, Quantity: 2})

	rec := doJSON(e, http.MethodPost, "/api/cart/discount", `{"code":"welcome10"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.DiscountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Applied)
	assert.Equal(t, int64(1000), resp.DiscountCents)
}

func TestApplyDiscount_UnknownCode(t *testing.T) {
	e, engine := newTestServer(t)
	engine.AddItem(context.Background(), domain.LineItem{ID: "sku-1", Name: "X", UnitPriceCents: 5000, Quantity: 1})

	rec := doJSON(e, http.MethodPost, "/api/cart/discount", `{"code":"NOPE"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.DiscountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Applied)
	assert.Zero(t, resp.DiscountCents)
}

func TestGetTotals(t *testing.T) {
	e, engine := newTestServer(t)
	engine.AddItem(context.Background(), domain.LineItem{ID: "sku-1", Name: "X", UnitPriceCents: 5000, Quantity: 2})

	rec := doJSON(e, http.MethodGet, "/api/cart/totals", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var totals pricing.Totals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, int64(10000), totals.SubtotalCents)
	assert.Equal(t, int64(1000), totals.TaxCents)
	assert.Equal(t, int64(500), totals.ShippingCents)
	assert.Equal(t, int64(11500), totals.TotalCents)
}

func TestRecentlyViewed(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/recently-viewed",
		`{"id":"p1","name":"Mug","price_cents":1400,"category":"drinkware"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.RecentlyViewed, 1)
	assert.Equal(t, "p1", resp.RecentlyViewed[0].ID)
}

func TestCheckout_Success(t *testing.T) {
	e, engine := newTestServer(t)
	engine.AddItem(context.Background(), domain.LineItem{ID: "sku-1", Name: "X", UnitPriceCents: 1000, Quantity: 1})

	rec := doJSON(e, http.MethodPost, "/api/checkout", `{"payment_method_id":"pm_1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)

	// Checkout emptied the cart.
	getRec := doJSON(e, http.MethodGet, "/api/cart", "")
	var cartResp api.CartResponse
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Items)
}

func TestCheckout_EmptyCart(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/checkout", `{"payment_method_id":"pm_1"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.EINVALID, resp.Code)
}
