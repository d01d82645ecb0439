package shipping

// ShippingError represents a shipping-specific error with a code and message.
// These constants mirror domain error codes to avoid circular imports.
type ShippingError struct {
	Code    string
	Message string
}

func (e *ShippingError) Error() string {
	return e.Message
}

const (
	codeInvalid     = "invalid"
	codeUnavailable = "unavailable"
)

var (
	// ErrNoRates is returned when no shipping rates are configured.
	ErrNoRates = &ShippingError{Code: codeUnavailable, Message: "No shipping rates available"}

	// ErrEmptyCart is returned when quoting a cart with no items.
	ErrEmptyCart = &ShippingError{Code: codeInvalid, Message: "At least one item is required"}
)
