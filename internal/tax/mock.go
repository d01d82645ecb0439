package tax

import "context"

// MockCalculator is a configurable Calculator for tests.
type MockCalculator struct {
	CalculateTaxFunc func(ctx context.Context, params TaxParams) (*TaxResult, error)

	// Calls records every params value passed to CalculateTax.
	Calls []TaxParams
}

// CalculateTax records the call and delegates to CalculateTaxFunc when set.
func (m *MockCalculator) CalculateTax(ctx context.Context, params TaxParams) (*TaxResult, error) {
	m.Calls = append(m.Calls, params)
	if m.CalculateTaxFunc != nil {
		return m.CalculateTaxFunc(ctx, params)
	}
	return &TaxResult{}, nil
}
