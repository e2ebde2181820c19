package reconcile

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"barberbook/database/repository/slot"
	"barberbook/models"
	"barberbook/services/notify"
)

// Reconciler turns a verified payment-completion event into the idempotent
// available -> booked slot transition plus confirmation notifications.
// Correctness under duplicate or concurrent deliveries rests on the
// repository's conditional write; the deduper only trims repeat work.
type Reconciler struct {
	Repo   slot.Repository
	Notify notify.Service
	Dedup  Deduper
	Logger *zap.Logger

	wg sync.WaitGroup
}

func NewReconciler(repo slot.Repository, notifier notify.Service, dedup Deduper, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		Repo:   repo,
		Notify: notifier,
		Dedup:  dedup,
		Logger: logger,
	}
}

// Process applies one payment event. Events of any type other than
// checkout.session.completed are acknowledged and ignored. The returned
// error is one of the typed errors in this package; the HTTP boundary maps
// them to status codes.
func (r *Reconciler) Process(ctx context.Context, ev *models.PaymentEvent) error {
	if ev.Type != models.EventCheckoutSessionCompleted {
		r.Logger.Debug("ignoring event", zap.String("eventId", ev.ID), zap.String("type", ev.Type))
		return nil
	}

	if r.Dedup != nil {
		seen, err := r.Dedup.Seen(ctx, ev.ID)
		if err != nil {
			r.Logger.Warn("dedup lookup failed, continuing without it",
				zap.String("eventId", ev.ID), zap.Error(err))
		} else if seen {
			r.Logger.Info("duplicate event delivery, already processed",
				zap.String("eventId", ev.ID))
			return nil
		}
	}

	intent, err := models.IntentFromMetadata(ev.Metadata)
	if err != nil {
		var missing *models.MissingFieldError
		if errors.As(err, &missing) {
			return &MissingMetadataError{Field: missing.Field}
		}
		return err
	}

	// The email collected on the payment page reflects what the customer
	// actually entered and wins over the one in the intent.
	email := ev.CollectedEmail
	if email == "" {
		email = intent.CustomerEmail
	}

	if intent.Amount == models.AmountUnknown {
		r.Logger.Warn("event metadata carried no parseable amount",
			zap.String("eventId", ev.ID), zap.String("slotId", intent.SlotID))
	}

	details := models.BookingDetails{
		CustomerName:  intent.CustomerName,
		CustomerPhone: intent.CustomerPhone,
		CustomerEmail: email,
		PaymentType:   models.PaymentTypeCard,
		ServiceType:   intent.ServiceType,
		Address:       intent.Address,
		Amount:        intent.Amount,
		BookedAt:      time.Now().UTC(),
	}

	booked, err := r.Repo.BookSlot(ctx, intent.SlotID, details)
	if errors.Is(err, slot.ErrNotFound) {
		return &UnknownSlotError{SlotID: intent.SlotID}
	}
	if err != nil {
		return &StoreWriteError{SlotID: intent.SlotID, Err: err}
	}

	r.markProcessed(ctx, ev.ID)

	if !booked {
		// Lost the race against another delivery, or the first delivery
		// already committed. The winner sent the notifications.
		r.Logger.Info("slot already booked, skipping mutation",
			zap.String("eventId", ev.ID), zap.String("slotId", intent.SlotID))
		return nil
	}

	r.Logger.Info("slot booked",
		zap.String("eventId", ev.ID),
		zap.String("slotId", intent.SlotID),
		zap.String("customerName", intent.CustomerName))

	r.dispatchNotice(notify.BookingNotice{
		SlotID:        intent.SlotID,
		Date:          intent.Date,
		Time:          intent.Time,
		CustomerName:  intent.CustomerName,
		CustomerPhone: intent.CustomerPhone,
		CustomerEmail: email,
		ServiceType:   intent.ServiceType,
		Address:       intent.Address,
		PaymentType:   models.PaymentTypeCard,
		Amount:        intent.Amount,
	})
	return nil
}

// dispatchNotice fires the notifications detached from the request so a
// slow send never delays the webhook response. The booking is already
// committed; notification failures are logged inside the service.
func (r *Reconciler) dispatchNotice(n notify.BookingNotice) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Notify.NotifyBooking(context.Background(), n)
	}()
}

func (r *Reconciler) markProcessed(ctx context.Context, eventID string) {
	if r.Dedup == nil {
		return
	}
	if err := r.Dedup.Mark(ctx, eventID); err != nil {
		r.Logger.Warn("failed to record processed event",
			zap.String("eventId", eventID), zap.Error(err))
	}
}

// Drain blocks until all in-flight notifications finish. Used on shutdown.
func (r *Reconciler) Drain() {
	r.wg.Wait()
}
