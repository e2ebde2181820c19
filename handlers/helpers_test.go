package handlers

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"barberbook/database/repository/slot"
	"barberbook/models"
	"barberbook/services/notify"
	"barberbook/services/reconcile"
)

const testWebhookSecret = "whsec_handler_test"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRepo struct {
	mu        sync.Mutex
	slots     map[string]*models.Slot
	failWrite bool
	writes    int
}

func newFakeRepo(slots ...models.Slot) *fakeRepo {
	r := &fakeRepo{slots: make(map[string]*models.Slot)}
	for i := range slots {
		s := slots[i]
		r.slots[s.ID] = &s
	}
	return r
}

func (r *fakeRepo) GetSlot(_ context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slot.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) BookSlot(_ context.Context, id string, details models.BookingDetails) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return false, errors.New("store unavailable")
	}
	s, ok := r.slots[id]
	if !ok {
		return false, slot.ErrNotFound
	}
	if s.Status == models.SlotStatusBooked {
		return false, nil
	}
	s.Status = models.SlotStatusBooked
	s.CustomerName = details.CustomerName
	s.CustomerPhone = details.CustomerPhone
	s.CustomerEmail = details.CustomerEmail
	s.PaymentType = details.PaymentType
	s.ServiceType = details.ServiceType
	s.Address = details.Address
	s.Amount = details.Amount
	bookedAt := details.BookedAt
	s.BookedAt = &bookedAt
	r.writes++
	return true, nil
}

func (r *fakeRepo) ListSlots(_ context.Context) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Slot, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *fakeRepo) slotState(id string) models.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.slots[id]
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notify.BookingNotice
}

func (f *fakeNotifier) NotifyBooking(_ context.Context, n notify.BookingNotice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, n)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notices)
}

// newWebhookRouter wires the webhook route against the real verifier and
// reconciler with fakes behind them.
func newWebhookRouter(repo slot.Repository, notifier notify.Service) (*gin.Engine, *reconcile.Reconciler) {
	verifier := &reconcile.StripeVerifier{Secret: testWebhookSecret}
	reconciler := reconcile.NewReconciler(repo, notifier, nil, zap.NewNop())
	h := NewWebhookHandler(verifier, reconciler, zap.NewNop())

	r := gin.New()
	r.POST("/webhook", h.HandleWebhook)
	return r, reconciler
}

func signedHeader(payload []byte, secret string) string {
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig))
}

func completedEventPayload(t *testing.T, eventID string, md map[string]string, collectedEmail string) []byte {
	t.Helper()
	object := map[string]any{
		"id":       "cs_" + eventID,
		"metadata": md,
	}
	if collectedEmail != "" {
		object["customer_details"] = map[string]any{"email": collectedEmail}
	}
	payload, err := json.Marshal(map[string]any{
		"id":   eventID,
		"type": "checkout.session.completed",
		"data": map[string]any{"object": object},
	})
	require.NoError(t, err)
	return payload
}
