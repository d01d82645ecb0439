package api

import (
	"net/http"

	"github.com/dukerupert/skadi/internal/domain"
	"github.com/labstack/echo/v4"
)

// CartResponse is the cart snapshot plus its derived values.
type CartResponse struct {
	Items          []domain.LineItem   `json:"items"`
	SavedItems     []domain.LineItem   `json:"saved_items"`
	RecentlyViewed []domain.ProductRef `json:"recently_viewed"`
	DiscountCents  int64               `json:"discount_cents"`
	ItemCount      int                 `json:"item_count"`
	SubtotalCents  int64               `json:"subtotal_cents"`
}

// AddItemRequest is the payload for POST /cart/items. Quantity may be
// omitted; values below 1 are treated as 1.
type AddItemRequest struct {
	ID             string `json:"id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	UnitPriceCents int64  `json:"unit_price_cents" validate:"gte=0"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"image_url"`
	Note           string `json:"note"`
	Category       string `json:"category"`
}

// UpdateQuantityRequest is the payload for PATCH /cart/items/:id. A quantity
// of zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// NoteRequest is the payload for PUT /cart/items/:id/note.
type NoteRequest struct {
	Note string `json:"note"`
}

// DiscountRequest is the payload for POST /cart/discount.
type DiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

// DiscountResponse reports whether a code was accepted. A rejected code is a
// normal outcome, not an error.
type DiscountResponse struct {
	Applied       bool  `json:"applied"`
	DiscountCents int64 `json:"discount_cents"`
}

// RecentlyViewedRequest is the payload for POST /recently-viewed.
type RecentlyViewedRequest struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	Category   string `json:"category"`
	ImageURL   string `json:"image_url"`
}

// GetCart handles GET /cart.
func (h *Handler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cartResponse())
}

// AddItem handles POST /cart/items.
func (h *Handler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.engine.AddItem(c.Request().Context(), domain.LineItem{
		ID:             req.ID,
		Name:           req.Name,
		UnitPriceCents: req.UnitPriceCents,
		Quantity:       req.Quantity,
		ImageURL:       req.ImageURL,
		Note:           req.Note,
		Category:       req.Category,
	})

	return c.JSON(http.StatusOK, h.cartResponse())
}

// UpdateQuantity handles PATCH /cart/items/:id.
func (h *Handler) UpdateQuantity(c echo.Context) error {
	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	h.engine.UpdateQuantity(c.Request().Context(), c.Param("id"), req.Quantity)
	return c.JSON(http.StatusOK, h.cartResponse())
}

// RemoveItem handles DELETE /cart/items/:id.
func (h *Handler) RemoveItem(c echo.Context) error {
	h.engine.RemoveItem(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, h.cartResponse())
}

// AddNote handles PUT /cart/items/:id/note.
func (h *Handler) AddNote(c echo.Context) error {
	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	h.engine.AddNote(c.Request().Context(), c.Param("id"), req.Note)
	return c.JSON(http.StatusOK, h.cartResponse())
}

// SaveForLater handles POST /cart/items/:id/save.
func (h *Handler) SaveForLater(c echo.Context) error {
	h.engine.SaveForLater(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, h.cartResponse())
}

// MoveToCart handles POST /cart/saved/:id/move.
func (h *Handler) MoveToCart(c echo.Context) error {
	h.engine.MoveToCart(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, h.cartResponse())
}

// RemoveSavedItem handles DELETE /cart/saved/:id.
func (h *Handler) RemoveSavedItem(c echo.Context) error {
	h.engine.RemoveSavedItem(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, h.cartResponse())
}

// ClearCart handles POST /cart/clear.
func (h *Handler) ClearCart(c echo.Context) error {
	h.engine.ClearCart(c.Request().Context())
	return c.JSON(http.StatusOK, h.cartResponse())
}

// ApplyDiscount handles POST /cart/discount.
func (h *Handler) ApplyDiscount(c echo.Context) error {
	var req DiscountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	applied := h.engine.ApplyDiscount(c.Request().Context(), req.Code)
	return c.JSON(http.StatusOK, DiscountResponse{
		Applied:       applied,
		DiscountCents: h.engine.Snapshot().DiscountCents,
	})
}

// ClearDiscount handles DELETE /cart/discount.
func (h *Handler) ClearDiscount(c echo.Context) error {
	h.engine.ClearDiscount(c.Request().Context())
	return c.JSON(http.StatusOK, h.cartResponse())
}

// GetTotals handles GET /cart/totals.
func (h *Handler) GetTotals(c echo.Context) error {
	snap := h.engine.Snapshot()
	totals, err := h.pricing.Compute(c.Request().Context(), snap.Items, snap.DiscountCents)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}

// AddRecentlyViewed handles POST /recently-viewed.
func (h *Handler) AddRecentlyViewed(c echo.Context) error {
	var req RecentlyViewedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.engine.AddToRecentlyViewed(c.Request().Context(), domain.ProductRef{
		ID:         req.ID,
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Category:   req.Category,
		ImageURL:   req.ImageURL,
	})

	return c.JSON(http.StatusOK, h.cartResponse())
}

// GetRecommendations handles GET /recommendations.
func (h *Handler) GetRecommendations(c echo.Context) error {
	recs, err := h.engine.Recommendations(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if recs == nil {
		recs = []domain.ProductRef{}
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) cartResponse() CartResponse {
	snap := h.engine.Snapshot()
	resp := CartResponse{
		Items:          snap.Items,
		SavedItems:     snap.SavedItems,
		RecentlyViewed: snap.RecentlyViewed,
		DiscountCents:  snap.DiscountCents,
		ItemCount:      snap.ItemCount(),
		SubtotalCents:  snap.SubtotalCents(),
	}
	if resp.Items == nil {
		resp.Items = []domain.LineItem{}
	}
	if resp.SavedItems == nil {
		resp.SavedItems = []domain.LineItem{}
	}
	if resp.RecentlyViewed == nil {
		resp.RecentlyViewed = []domain.ProductRef{}
	}
	return resp
}
