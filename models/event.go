package models

// EventCheckoutSessionCompleted is the only provider event type that
// triggers booking logic; everything else is acknowledged and ignored.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// PaymentEvent is a verified, provider-agnostic view of a webhook delivery.
// The verifier builds it from the raw signed payload; it is never stored.
type PaymentEvent struct {
	ID       string
	Type     string
	Metadata map[string]string
	// CollectedEmail is the address the customer actually entered on the
	// provider's payment page. It takes precedence over the email carried
	// in the intent metadata.
	CollectedEmail string
}
