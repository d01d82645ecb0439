package shipping

import "context"

// MockProvider is a configurable Provider for tests.
type MockProvider struct {
	GetRatesFunc func(ctx context.Context, params RateParams) ([]Rate, error)

	// Calls records every params value passed to GetRates.
	Calls []RateParams
}

// GetRates records the call and delegates to GetRatesFunc when set.
func (m *MockProvider) GetRates(ctx context.Context, params RateParams) ([]Rate, error) {
	m.Calls = append(m.Calls, params)
	if m.GetRatesFunc != nil {
		return m.GetRatesFunc(ctx, params)
	}
	return nil, nil
}
