package discount

import "strings"

// Engine validates discount codes against a static, compiled-in table.
// No expiry, usage-limit, or per-customer restriction logic exists here;
// a code table backed by a service is a replaceable extension point.
type Engine struct {
	codes map[string]float64
}

// defaultCodes maps code -> rate (0 < rate <= 1).
var defaultCodes = map[string]float64{
	"WELCOME10": 0.10,
	"SAVE15":    0.15,
	"VIP20":     0.20,
}

// NewEngine creates a discount engine with the built-in code table.
func NewEngine() *Engine {
	return NewEngineWithCodes(defaultCodes)
}

// NewEngineWithCodes creates a discount engine with a custom code table.
// Keys are normalized to upper case.
func NewEngineWithCodes(codes map[string]float64) *Engine {
	normalized := make(map[string]float64, len(codes))
	for code, rate := range codes {
		normalized[Normalize(code)] = rate
	}
	return &Engine{codes: normalized}
}

// Validate looks up a code and returns its rate. The second return value
// reports whether the code exists; an invalid code is an expected outcome,
// not an error.
func (e *Engine) Validate(code string) (float64, bool) {
	rate, ok := e.codes[Normalize(code)]
	return rate, ok
}

// Normalize applies the same transformation at table construction and lookup
// so the two can never disagree.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
