package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"barberbook/database/repository/slot"
	"barberbook/models"
	"barberbook/services/notify"
)

// BookingHandler covers the bookings that bypass the payment provider
// (cash at the chair) plus the slot listing used by the booking table.
type BookingHandler struct {
	Repo     slot.Repository
	Notifier notify.Service
	Logger   *zap.Logger
}

func NewBookingHandler(repo slot.Repository, notifier notify.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Repo: repo, Notifier: notifier, Logger: logger}
}

type cashBookingRequest struct {
	SlotID        string `json:"slotId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`
	ServiceType   string `json:"serviceType"`
	Address       string `json:"address"`
	Amount        int64  `json:"amount"`
	PaymentType   string `json:"paymentType"`
}

// CreateCashBooking performs the same conditional available -> booked
// transition as the webhook path, just without a provider event in front
// of it.
func (h *BookingHandler) CreateCashBooking(c *gin.Context) {
	var req cashBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.SlotID == "" || req.CustomerName == "" || req.CustomerPhone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slotId, customerName and customerPhone are required"})
		return
	}

	details := models.BookingDetails{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		PaymentType:   models.PaymentTypeCash,
		ServiceType:   models.ServiceType(req.ServiceType),
		Address:       req.Address,
		Amount:        req.Amount,
		BookedAt:      time.Now().UTC(),
	}

	booked, err := h.Repo.BookSlot(c.Request.Context(), req.SlotID, details)
	if errors.Is(err, slot.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "slot not found"})
		return
	}
	if err != nil {
		h.Logger.Error("cash booking failed",
			zap.String("slotId", req.SlotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book slot"})
		return
	}
	if !booked {
		c.JSON(http.StatusConflict, gin.H{"error": "slot already booked"})
		return
	}

	// Detached from the request so a slow send cannot delay the response.
	go h.Notifier.NotifyBooking(context.Background(), notify.BookingNotice{
		SlotID:        req.SlotID,
		Date:          req.Date,
		Time:          req.Time,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceType:   models.ServiceType(req.ServiceType),
		Address:       req.Address,
		PaymentType:   models.PaymentTypeCash,
		Amount:        req.Amount,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "bookingId": uuid.New().String()})
}

// ListSlots returns every slot for the booking table.
func (h *BookingHandler) ListSlots(c *gin.Context) {
	slots, err := h.Repo.ListSlots(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slots"})
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
