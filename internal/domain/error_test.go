package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "cart.add_item",
				Message: "invalid input",
			},
			expected: "cart.add_item: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "checkout.complete",
				Message: "failed to create order",
				Err:     errors.New("connection refused"),
			},
			expected: "checkout.complete: failed to create order: connection refused",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to create order",
				Err:     errors.New("connection refused"),
			},
			expected: "failed to create order: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      &Error{Code: EINVALID, Message: "test"},
			expected: EINVALID,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("wrapped: %w", &Error{Code: ENOTFOUND, Message: "test"}),
			expected: ENOTFOUND,
		},
		{
			name:     "non-domain error",
			err:      errors.New("plain error"),
			expected: EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error shows message",
			err:      &Error{Code: EINVALID, Message: "quantity must be positive"},
			expected: "quantity must be positive",
		},
		{
			name:     "internal error hides details",
			err:      &Error{Code: EINTERNAL, Message: "pgx: connection reset"},
			expected: "An internal error occurred. Please try again later.",
		},
		{
			name:     "non-domain error hides details",
			err:      errors.New("sensitive details"),
			expected: "An internal error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	if got := WrapError(nil, EINTERNAL, "op", "msg"); got != nil {
		t.Errorf("WrapError(nil) = %v, want nil", got)
	}

	underlying := errors.New("disk full")
	err := WrapError(underlying, EINTERNAL, "cartstore.save", "failed to persist cart")

	if !errors.Is(err, underlying) {
		t.Error("wrapped error should match underlying via errors.Is")
	}
	if ErrorCode(err) != EINTERNAL {
		t.Errorf("ErrorCode() = %q, want %q", ErrorCode(err), EINTERNAL)
	}
}

func TestIsCode(t *testing.T) {
	err := Invalid("checkout.complete", "cannot complete an empty order")

	if !IsCode(err, EINVALID) {
		t.Error("IsCode should match EINVALID")
	}
	if IsCode(err, ENOTFOUND) {
		t.Error("IsCode should not match ENOTFOUND")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("cart.add_item", "quantity", "must be at least 1")

	if !IsValidationError(err) {
		t.Error("IsValidationError should be true")
	}

	expected := "cart.add_item: quantity: must be at least 1"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode string
	}{
		{"NotFound", NotFound("cart.remove", "line item", "sku-123"), ENOTFOUND},
		{"Invalid", Invalid("cart.add_item", "bad quantity"), EINVALID},
		{"Conflict", Conflict("checkout.complete", "checkout already in flight"), ECONFLICT},
		{"Internal", Internal(errors.New("boom"), "orders.create", "insert failed"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expectedCode {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expectedCode)
			}
		})
	}
}
