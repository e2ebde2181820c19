package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"barberbook/models"
)

// Verifier authenticates a raw webhook delivery and converts it into a
// provider-agnostic PaymentEvent. Verification must run over the exact
// bytes Stripe sent; any re-encoding of the body invalidates the signature.
type Verifier interface {
	Verify(rawBody []byte, sigHeader string) (*models.PaymentEvent, error)
}

// StripeVerifier validates the Stripe-Signature header against the shared
// webhook signing secret.
type StripeVerifier struct {
	Secret string
}

func (v *StripeVerifier) Verify(rawBody []byte, sigHeader string) (*models.PaymentEvent, error) {
	ev, err := webhook.ConstructEvent(rawBody, sigHeader, v.Secret)
	if err != nil {
		return nil, &VerificationError{Err: err}
	}

	out := &models.PaymentEvent{
		ID:   ev.ID,
		Type: string(ev.Type),
	}
	if out.Type != models.EventCheckoutSessionCompleted {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
		return nil, &VerificationError{Err: fmt.Errorf("malformed checkout session object: %w", err)}
	}
	out.Metadata = cs.Metadata
	if cs.CustomerDetails != nil {
		out.CollectedEmail = cs.CustomerDetails.Email
	}
	return out, nil
}
