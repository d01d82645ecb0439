// Package api exposes the cart engine over a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/dukerupert/skadi/internal/cart"
	"github.com/dukerupert/skadi/internal/checkout"
	"github.com/dukerupert/skadi/internal/pricing"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler serves the cart, pricing and checkout endpoints.
type Handler struct {
	engine   *cart.Engine
	pricing  *pricing.Calculator
	checkout *checkout.Service
	logger   zerolog.Logger
}

// NewHandler creates an API handler.
func NewHandler(engine *cart.Engine, calc *pricing.Calculator, svc *checkout.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		pricing:  calc,
		checkout: svc,
		logger:   logger,
	}
}

// RegisterRoutes mounts all endpoints on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", h.GetCart)
	g.POST("/cart/items", h.AddItem)
	g.PATCH("/cart/items/:id", h.UpdateQuantity)
	g.DELETE("/cart/items/:id", h.RemoveItem)
	g.PUT("/cart/items/:id/note", h.AddNote)
	g.POST("/cart/items/:id/save", h.SaveForLater)
	g.POST("/cart/clear", h.ClearCart)
	g.POST("/cart/saved/:id/move", h.MoveToCart)
	g.DELETE("/cart/saved/:id", h.RemoveSavedItem)
	g.POST("/cart/discount", h.ApplyDiscount)
	g.DELETE("/cart/discount", h.ClearDiscount)
	g.GET("/cart/totals", h.GetTotals)
	g.POST("/recently-viewed", h.AddRecentlyViewed)
	g.GET("/recommendations", h.GetRecommendations)
	g.POST("/checkout", h.CompleteOrder)
}

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
