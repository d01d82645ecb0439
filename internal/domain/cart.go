package domain

// RecentlyViewedMax caps the recently-viewed history length.
const RecentlyViewedMax = 8

// Cart domain errors.
var (
	ErrEmptyCart       = &Error{Code: EINVALID, Message: "Cannot complete an empty order"}
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// LineItem represents one product entry in the cart with a quantity.
// Identity is ID (the stable product identifier); additions of the same ID
// merge by summing quantity rather than appending a duplicate entry.
type LineItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	ImageURL       string `json:"image_url,omitempty"`
	Note           string `json:"note,omitempty"`
	Category       string `json:"category,omitempty"`
}

// LineSubtotal returns the line's price contribution in cents.
func (li LineItem) LineSubtotal() int64 {
	return li.UnitPriceCents * int64(li.Quantity)
}

// CartSnapshot is an immutable copy of the engine's state handed to callers.
// Items and SavedItems are disjoint sets of IDs; RecentlyViewed is
// most-recent-first, deduplicated by ID and capped at RecentlyViewedMax.
type CartSnapshot struct {
	Items          []LineItem   `json:"items"`
	SavedItems     []LineItem   `json:"saved_items"`
	RecentlyViewed []ProductRef `json:"recently_viewed"`
	DiscountCents  int64        `json:"discount_cents"`
}

// ItemCount returns the sum of quantities across active line items.
func (s CartSnapshot) ItemCount() int {
	count := 0
	for _, li := range s.Items {
		count += li.Quantity
	}
	return count
}

// SubtotalCents returns the sum of line subtotals across active line items.
func (s CartSnapshot) SubtotalCents() int64 {
	var subtotal int64
	for _, li := range s.Items {
		subtotal += li.LineSubtotal()
	}
	return subtotal
}
