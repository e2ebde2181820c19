package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"barberbook/services/reconcile"
)

const maxWebhookBodyBytes = 65536

// WebhookHandler receives Stripe webhook deliveries, authenticates them,
// and hands verified events to the reconciler.
type WebhookHandler struct {
	Verifier   reconcile.Verifier
	Reconciler *reconcile.Reconciler
	Logger     *zap.Logger
}

func NewWebhookHandler(verifier reconcile.Verifier, reconciler *reconcile.Reconciler, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Verifier: verifier, Reconciler: reconciler, Logger: logger}
}

// HandleWebhook maps reconciliation outcomes to HTTP statuses: 4xx when the
// payload is untrusted or unfixably malformed, 200 when retrying cannot
// help (ignored types, duplicates, unknown slots), 5xx only for transient
// store failures Stripe should retry.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	// The signature is computed over the exact bytes, so the body must be
	// read raw and never re-encoded before verification.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	ev, err := h.Verifier.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.Logger.Warn("webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook verification failed"})
		return
	}

	err = h.Reconciler.Process(c.Request.Context(), ev)
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	var (
		missingErr *reconcile.MissingMetadataError
		unknownErr *reconcile.UnknownSlotError
		storeErr   *reconcile.StoreWriteError
	)
	switch {
	case errors.As(err, &missingErr):
		h.Logger.Error("webhook event missing booking metadata",
			zap.String("eventId", ev.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": missingErr.Error()})
	case errors.As(err, &unknownErr):
		// Retries can never succeed without operator intervention, so
		// acknowledge the delivery and surface the problem in logs.
		h.Logger.Error("webhook event references unknown slot",
			zap.String("eventId", ev.ID), zap.String("slotId", unknownErr.SlotID))
		c.Status(http.StatusOK)
	case errors.As(err, &storeErr):
		h.Logger.Error("store write failed during reconciliation",
			zap.String("eventId", ev.ID), zap.String("slotId", storeErr.SlotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist booking"})
	default:
		h.Logger.Error("unexpected reconciliation failure",
			zap.String("eventId", ev.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
	}
}
