package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CheckoutRequest is the payload for POST /checkout.
type CheckoutRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// CompleteOrder handles POST /checkout.
func (h *Handler) CompleteOrder(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.checkout.CompleteOrder(c.Request().Context(), req.PaymentMethodID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}
