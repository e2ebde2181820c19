package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"barberbook/models"
)

// Service builds a provider checkout session from a booking intent and
// returns the redirect URL. The slot itself stays available until the
// completion webhook confirms payment.
type Service interface {
	CreateSession(ctx context.Context, intent models.BookingIntent) (string, error)
}

// sessionAPI is the slice of the Stripe client we actually use; tests
// substitute a fake.
type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeService is the production Service implementation.
type StripeService struct {
	Sessions   sessionAPI
	Currency   string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewStripeService wires a StripeService against the real Stripe backend.
func NewStripeService(apiKey, currency, frontendBaseURL string, logger *zap.Logger) *StripeService {
	return &StripeService{
		Sessions: &session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: apiKey,
		},
		Currency:   currency,
		SuccessURL: frontendBaseURL + "/success",
		CancelURL:  frontendBaseURL + "/cancel",
		Timeout:    10 * time.Second,
		Logger:     logger,
	}
}

func (s *StripeService) CreateSession(ctx context.Context, intent models.BookingIntent) (string, error) {
	if err := validateIntent(intent); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(lineItemName(intent)),
					},
					UnitAmount: stripe.Int64(intent.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.SuccessURL),
		CancelURL:  stripe.String(s.CancelURL),
	}
	params.Params.Context = ctx

	// The intent round-trips through Stripe as flat string metadata and is
	// decoded again by the reconciler when the webhook arrives.
	for k, v := range intent.Metadata() {
		params.AddMetadata(k, v)
	}

	sess, err := s.Sessions.New(params)
	if err != nil {
		s.Logger.Error("stripe session creation failed",
			zap.String("slotId", intent.SlotID), zap.Error(err))
		return "", &InitiationError{Err: err}
	}

	s.Logger.Info("checkout session created",
		zap.String("slotId", intent.SlotID), zap.String("sessionId", sess.ID))
	return sess.URL, nil
}

func validateIntent(intent models.BookingIntent) error {
	switch {
	case intent.SlotID == "":
		return &ValidationError{Field: "slotId", Reason: "is required"}
	case intent.CustomerName == "":
		return &ValidationError{Field: "customerName", Reason: "is required"}
	case intent.CustomerPhone == "":
		return &ValidationError{Field: "customerPhone", Reason: "is required"}
	case intent.Amount <= 0:
		return &ValidationError{Field: "amount", Reason: "must be a positive integer"}
	case intent.ServiceType == models.ServiceTypeAtHome && intent.Address == "":
		return &ValidationError{Field: "address", Reason: "is required for at-home bookings"}
	}
	return nil
}

func lineItemName(intent models.BookingIntent) string {
	label := "in shop"
	if intent.ServiceType == models.ServiceTypeAtHome {
		label = "at home"
	}
	return fmt.Sprintf("Barber slot %s %s (%s)", intent.Date, intent.Time, label)
}
