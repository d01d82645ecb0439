package cartstore

import "fmt"

// ErrUnknownProvider creates an error for an unrecognized store provider name.
func ErrUnknownProvider(provider string) error {
	return fmt.Errorf("unknown cart store provider: %q (expected \"local\" or \"redis\")", provider)
}
