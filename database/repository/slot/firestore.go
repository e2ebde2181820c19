package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"barberbook/models"
)

const slotsCollection = "slots"

// FirestoreRepo is the primary Repository implementation, backed by the
// "slots" Firestore collection keyed by slot id.
type FirestoreRepo struct {
	client *firestore.Client
}

func NewFirestoreRepo(client *firestore.Client) *FirestoreRepo {
	return &FirestoreRepo{client: client}
}

func (r *FirestoreRepo) GetSlot(ctx context.Context, id string) (*models.Slot, error) {
	doc, err := r.client.Collection(slotsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot %s: %w", id, err)
	}
	var s models.Slot
	if err := doc.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to decode slot %s: %w", id, err)
	}
	s.ID = doc.Ref.ID
	return &s, nil
}

// BookSlot runs the transition inside a Firestore transaction: the status
// check and the write are atomic, so a concurrent duplicate delivery
// observes booked and leaves the document untouched.
func (r *FirestoreRepo) BookSlot(ctx context.Context, id string, details models.BookingDetails) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booked := false
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		booked = false
		ref := r.client.Collection(slotsCollection).Doc(id)
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var s models.Slot
		if err := doc.DataTo(&s); err != nil {
			return err
		}
		if s.Status == models.SlotStatusBooked {
			return nil
		}
		booked = true
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: models.SlotStatusBooked},
			{Path: "customerName", Value: details.CustomerName},
			{Path: "customerPhone", Value: details.CustomerPhone},
			{Path: "customerEmail", Value: details.CustomerEmail},
			{Path: "paymentType", Value: details.PaymentType},
			{Path: "serviceType", Value: details.ServiceType},
			{Path: "address", Value: details.Address},
			{Path: "amount", Value: details.Amount},
			{Path: "bookedAt", Value: details.BookedAt},
		})
	})
	if errors.Is(err, ErrNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to book slot %s: %w", id, err)
	}
	return booked, nil
}

func (r *FirestoreRepo) ListSlots(ctx context.Context) ([]models.Slot, error) {
	iter := r.client.Collection(slotsCollection).Documents(ctx)
	defer iter.Stop()

	var slots []models.Slot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list slots: %w", err)
		}
		var s models.Slot
		if err := doc.DataTo(&s); err != nil {
			return nil, fmt.Errorf("failed to decode slot %s: %w", doc.Ref.ID, err)
		}
		s.ID = doc.Ref.ID
		slots = append(slots, s)
	}
	return slots, nil
}
