package reconcile

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"

	"barberbook/models"
)

const testWebhookSecret = "whsec_test_secret"

func signedHeader(payload []byte, secret string) string {
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig))
}

func completedEventPayload(t *testing.T, md map[string]string, collectedEmail string) []byte {
	t.Helper()
	object := map[string]any{
		"id":       "cs_test_1",
		"metadata": md,
	}
	if collectedEmail != "" {
		object["customer_details"] = map[string]any{"email": collectedEmail}
	}
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_test_1",
		"type": "checkout.session.completed",
		"data": map[string]any{"object": object},
	})
	require.NoError(t, err)
	return payload
}

func TestVerifyAcceptsSignedEvent(t *testing.T) {
	v := &StripeVerifier{Secret: testWebhookSecret}
	md := map[string]string{"slotId": "S1", "customerName": "Jan", "customerPhone": "+48123"}
	payload := completedEventPayload(t, md, "jan@example.com")

	ev, err := v.Verify(payload, signedHeader(payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, "evt_test_1", ev.ID)
	assert.Equal(t, models.EventCheckoutSessionCompleted, ev.Type)
	assert.Equal(t, md, ev.Metadata)
	assert.Equal(t, "jan@example.com", ev.CollectedEmail)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := &StripeVerifier{Secret: testWebhookSecret}
	payload := completedEventPayload(t, map[string]string{"slotId": "S1"}, "")

	_, err := v.Verify(payload, signedHeader(payload, "whsec_other"))
	var vErr *VerificationError
	assert.ErrorAs(t, err, &vErr)
}

func TestVerifyRejectsMissingHeader(t *testing.T) {
	v := &StripeVerifier{Secret: testWebhookSecret}
	payload := completedEventPayload(t, map[string]string{"slotId": "S1"}, "")

	_, err := v.Verify(payload, "")
	var vErr *VerificationError
	assert.ErrorAs(t, err, &vErr)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	v := &StripeVerifier{Secret: testWebhookSecret}
	payload := completedEventPayload(t, map[string]string{"slotId": "S1"}, "")
	header := signedHeader(payload, testWebhookSecret)

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = 'X'

	_, err := v.Verify(tampered, header)
	var vErr *VerificationError
	assert.ErrorAs(t, err, &vErr)
}

func TestVerifyPassesThroughOtherEventTypes(t *testing.T) {
	v := &StripeVerifier{Secret: testWebhookSecret}
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_test_2",
		"type": "payment_intent.succeeded",
		"data": map[string]any{"object": map[string]any{"id": "pi_1"}},
	})
	require.NoError(t, err)

	ev, err := v.Verify(payload, signedHeader(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.succeeded", ev.Type)
	assert.Nil(t, ev.Metadata)
}
