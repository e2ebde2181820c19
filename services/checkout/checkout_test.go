package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"barberbook/models"
)

type fakeSessions struct {
	params *stripe.CheckoutSessionParams
	sess   *stripe.CheckoutSession
	err    error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	return f.sess, f.err
}

func testService(sessions *fakeSessions) *StripeService {
	return &StripeService{
		Sessions:   sessions,
		Currency:   "pln",
		SuccessURL: "http://localhost:5173/success",
		CancelURL:  "http://localhost:5173/cancel",
		Timeout:    time.Second,
		Logger:     zap.NewNop(),
	}
}

func validIntent() models.BookingIntent {
	return models.BookingIntent{
		SlotID:        "S1",
		Date:          "2026-09-01",
		Time:          "10:00",
		CustomerName:  "Jan",
		CustomerPhone: "+48123",
		ServiceType:   models.ServiceTypeInShop,
		Amount:        4000,
	}
}

func TestCreateSessionReturnsRedirectURL(t *testing.T) {
	sessions := &fakeSessions{sess: &stripe.CheckoutSession{
		ID:  "cs_1",
		URL: "https://checkout.stripe.com/pay/cs_1",
	}}
	s := testService(sessions)

	url, err := s.CreateSession(context.Background(), validIntent())
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_1", url)

	require.NotNil(t, sessions.params)
	require.Len(t, sessions.params.LineItems, 1)
	price := sessions.params.LineItems[0].PriceData
	assert.Equal(t, "pln", *price.Currency)
	assert.Equal(t, int64(4000), *price.UnitAmount)
	assert.Contains(t, *price.ProductData.Name, "10:00")
}

func TestCreateSessionAttachesFullIntentAsMetadata(t *testing.T) {
	sessions := &fakeSessions{sess: &stripe.CheckoutSession{URL: "https://stripe.test"}}
	s := testService(sessions)
	intent := validIntent()

	_, err := s.CreateSession(context.Background(), intent)
	require.NoError(t, err)

	md := sessions.params.Metadata
	// The metadata must decode back into the same intent on the webhook side.
	decoded, err := models.IntentFromMetadata(md)
	require.NoError(t, err)
	assert.Equal(t, intent, decoded)
}

func TestCreateSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.BookingIntent)
		field  string
	}{
		{
			name:   "missing slot id",
			mutate: func(bi *models.BookingIntent) { bi.SlotID = "" },
			field:  "slotId",
		},
		{
			name:   "missing customer name",
			mutate: func(bi *models.BookingIntent) { bi.CustomerName = "" },
			field:  "customerName",
		},
		{
			name:   "missing customer phone",
			mutate: func(bi *models.BookingIntent) { bi.CustomerPhone = "" },
			field:  "customerPhone",
		},
		{
			name:   "zero amount",
			mutate: func(bi *models.BookingIntent) { bi.Amount = 0 },
			field:  "amount",
		},
		{
			name:   "negative amount",
			mutate: func(bi *models.BookingIntent) { bi.Amount = -100 },
			field:  "amount",
		},
		{
			name: "at home without address",
			mutate: func(bi *models.BookingIntent) {
				bi.ServiceType = models.ServiceTypeAtHome
				bi.Address = ""
			},
			field: "address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessions{}
			s := testService(sessions)
			intent := validIntent()
			tt.mutate(&intent)

			_, err := s.CreateSession(context.Background(), intent)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Nil(t, sessions.params, "provider must not be called on invalid input")
		})
	}
}

func TestCreateSessionAtHomeWithAddressPasses(t *testing.T) {
	sessions := &fakeSessions{sess: &stripe.CheckoutSession{URL: "https://stripe.test"}}
	s := testService(sessions)
	intent := validIntent()
	intent.ServiceType = models.ServiceTypeAtHome
	intent.Address = "ul. Prosta 5"

	_, err := s.CreateSession(context.Background(), intent)
	require.NoError(t, err)
	assert.Contains(t, *sessions.params.LineItems[0].PriceData.ProductData.Name, "at home")
}

func TestCreateSessionProviderFailure(t *testing.T) {
	sessions := &fakeSessions{err: errors.New("invalid currency")}
	s := testService(sessions)

	_, err := s.CreateSession(context.Background(), validIntent())

	var initErr *InitiationError
	require.ErrorAs(t, err, &initErr)
}
