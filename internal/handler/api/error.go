package api

import (
	"net/http"

	"github.com/dukerupert/skadi/internal/domain"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError translates domain errors to HTTP responses. Echo HTTP errors
// pass through untouched.
func respondError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return he
	}

	code := domain.ErrorCode(err)
	return c.JSON(errorCodeToHTTPStatus(code), ErrorResponse{
		Code:    code,
		Message: domain.ErrorMessage(err),
	})
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable // 503
	case domain.ENOTIMPL:
		return http.StatusNotImplemented // 501
	default:
		return http.StatusInternalServerError // 500
	}
}
