package slot

import (
	"context"
	"errors"

	"barberbook/models"
)

// ErrNotFound is returned when no slot document exists for the given id.
var ErrNotFound = errors.New("slot not found")

// Repository wraps the slot store. The store is the single synchronization
// point of the whole system: BookSlot must be a conditional write so that
// at most one transition wins under concurrent webhook deliveries.
type Repository interface {
	// GetSlot fetches a slot by id, or ErrNotFound.
	GetSlot(ctx context.Context, id string) (*models.Slot, error)

	// BookSlot applies the available -> booked transition. It returns
	// (true, nil) when this call performed the transition, (false, nil)
	// when the slot exists but was already booked, and ErrNotFound when
	// no such slot exists. It never overwrites an existing booking.
	BookSlot(ctx context.Context, id string, details models.BookingDetails) (bool, error)

	// ListSlots returns every slot document.
	ListSlots(ctx context.Context) ([]models.Slot, error)
}
