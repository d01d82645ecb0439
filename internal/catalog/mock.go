package catalog

import (
	"context"

	"github.com/dukerupert/skadi/internal/domain"
)

// MockProvider is a test double for Provider.
type MockProvider struct {
	ProductsFunc func(ctx context.Context) ([]domain.ProductRef, error)

	Calls int
}

func (m *MockProvider) Products(ctx context.Context) ([]domain.ProductRef, error) {
	m.Calls++
	if m.ProductsFunc != nil {
		return m.ProductsFunc(ctx)
	}
	return nil, nil
}
