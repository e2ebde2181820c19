package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"barberbook/models"
	"barberbook/services/checkout"
)

// CheckoutHandler exposes checkout-session creation.
type CheckoutHandler struct {
	Service checkout.Service
	Logger  *zap.Logger
}

func NewCheckoutHandler(service checkout.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{Service: service, Logger: logger}
}

type createSessionRequest struct {
	SlotID        string `json:"slotId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`
	ServiceType   string `json:"serviceType"`
	Address       string `json:"address"`
	Amount        int64  `json:"amount"`
}

// CreateCheckoutSession builds a provider session for the booking intent
// and returns the redirect URL. The slot is not touched here; it stays
// available until the completion webhook arrives.
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	intent := models.BookingIntent{
		SlotID:        req.SlotID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceType:   models.ServiceType(req.ServiceType),
		Address:       req.Address,
		Amount:        req.Amount,
	}

	url, err := h.Service.CreateSession(c.Request.Context(), intent)
	if err != nil {
		var vErr *checkout.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		// Provider rejection or timeout; no internal detail leaks to the client.
		h.Logger.Error("checkout session initiation failed",
			zap.String("slotId", req.SlotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
