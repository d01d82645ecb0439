package domain

// ProductRef is the catalog-facing projection of a product, used for
// recommendations and the recently-viewed history. It is owned by the catalog
// collaborator and never mutated by the engine.
type ProductRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
	ImageURL   string `json:"image_url,omitempty"`
}
