package reconcile

import "fmt"

// VerificationError rejects an inbound webhook whose signature is missing,
// wrong, or computed over a tampered payload. Nothing downstream runs.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("webhook verification failed: %v", e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// MissingMetadataError reports a verified event whose booking intent lacks
// a required field. Retrying cannot fix it, so the boundary answers 4xx.
type MissingMetadataError struct {
	Field string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("payment event metadata missing required field %q", e.Field)
}

// UnknownSlotError reports a verified, well-formed event referencing a slot
// that does not exist in the store.
type UnknownSlotError struct {
	SlotID string
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("payment event references unknown slot %q", e.SlotID)
}

// StoreWriteError wraps a transient store failure during reconciliation;
// the provider may retry the delivery.
type StoreWriteError struct {
	SlotID string
	Err    error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to persist booking for slot %q: %v", e.SlotID, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
