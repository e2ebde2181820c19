package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barberbook/models"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if to == m.failTo {
		return errors.New("mail API unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.to)
	}
	return out
}

func notice() BookingNotice {
	return BookingNotice{
		SlotID:        "S1",
		Date:          "2026-09-01",
		Time:          "10:00",
		CustomerName:  "Jan",
		CustomerPhone: "+48123",
		CustomerEmail: "jan@example.com",
		ServiceType:   models.ServiceTypeInShop,
		PaymentType:   models.PaymentTypeCard,
		Amount:        4000,
	}
}

func newService(mailer Mailer) *DefaultService {
	return NewDefaultService(mailer, nil, "owner@barber.example", "", zap.NewNop())
}

func TestNotifyBookingSendsCustomerAndAdmin(t *testing.T) {
	mailer := &fakeMailer{}
	s := newService(mailer)

	s.NotifyBooking(context.Background(), notice())

	assert.ElementsMatch(t, []string{"jan@example.com", "owner@barber.example"}, mailer.recipients())
}

func TestNotifyBookingSkipsCustomerWithoutEmail(t *testing.T) {
	mailer := &fakeMailer{}
	s := newService(mailer)

	n := notice()
	n.CustomerEmail = ""
	s.NotifyBooking(context.Background(), n)

	assert.Equal(t, []string{"owner@barber.example"}, mailer.recipients())
}

func TestNotifyBookingCustomerFailureDoesNotSuppressAdmin(t *testing.T) {
	mailer := &fakeMailer{failTo: "jan@example.com"}
	s := newService(mailer)

	s.NotifyBooking(context.Background(), notice())

	assert.Equal(t, []string{"owner@barber.example"}, mailer.recipients())
}

func TestNotifyBookingAdminFailureDoesNotSuppressCustomer(t *testing.T) {
	mailer := &fakeMailer{failTo: "owner@barber.example"}
	s := newService(mailer)

	s.NotifyBooking(context.Background(), notice())

	assert.Equal(t, []string{"jan@example.com"}, mailer.recipients())
}

func TestAdminBodySummarizesBooking(t *testing.T) {
	body := adminBody(notice())

	assert.Contains(t, body, "Jan")
	assert.Contains(t, body, "+48123")
	assert.Contains(t, body, "jan@example.com")
	assert.Contains(t, body, "2026-09-01")
	assert.Contains(t, body, "40.00 PLN")
}

func TestHTTPMailerPostsJSON(t *testing.T) {
	var got mailPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewHTTPMailer(srv.URL, "key_123", "bookings@barber.example")
	err := m.Send(context.Background(), "jan@example.com", "subject", "body")

	require.NoError(t, err)
	assert.Equal(t, "Bearer key_123", auth)
	assert.Equal(t, "bookings@barber.example", got.From)
	assert.Equal(t, []string{"jan@example.com"}, got.To)
}

func TestHTTPMailerReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewHTTPMailer(srv.URL, "bad", "bookings@barber.example")
	err := m.Send(context.Background(), "jan@example.com", "subject", "body")

	assert.ErrorContains(t, err, "401")
}
