package checkout

import "fmt"

// ValidationError rejects a booking intent before it ever reaches the
// payment provider.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking intent: %s %s", e.Field, e.Reason)
}

// InitiationError signals that the payment provider rejected or timed out
// on session creation. No side effect has occurred; the caller may retry.
type InitiationError struct {
	Err error
}

func (e *InitiationError) Error() string {
	return fmt.Sprintf("failed to create checkout session: %v", e.Err)
}

func (e *InitiationError) Unwrap() error {
	return e.Err
}
