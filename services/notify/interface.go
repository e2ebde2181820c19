package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"barberbook/models"
)

// BookingNotice is everything the confirmation messages need to say.
type BookingNotice struct {
	SlotID        string
	Date          string
	Time          string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceType   models.ServiceType
	Address       string
	PaymentType   models.PaymentType
	Amount        int64
}

// Service delivers booking confirmations to the customer and the shop
// owner. Every send is best-effort: failures are logged and swallowed,
// because the booking is already committed by the time this runs.
type Service interface {
	NotifyBooking(ctx context.Context, n BookingNotice)
}

// DefaultService sends a customer email (when an address is known), an
// owner email, and optionally an FCM push to the owner's device. All sends
// run concurrently and independently.
type DefaultService struct {
	Mailer        Mailer
	FCM           *messaging.Client
	AdminEmail    string
	AdminFCMToken string
	Logger        *zap.Logger
	Timeout       time.Duration
}

func NewDefaultService(mailer Mailer, fcm *messaging.Client, adminEmail, adminFCMToken string, logger *zap.Logger) *DefaultService {
	return &DefaultService{
		Mailer:        mailer,
		FCM:           fcm,
		AdminEmail:    adminEmail,
		AdminFCMToken: adminFCMToken,
		Logger:        logger,
		Timeout:       10 * time.Second,
	}
}

func (s *DefaultService) NotifyBooking(ctx context.Context, n BookingNotice) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var wg sync.WaitGroup

	if n.CustomerEmail == "" {
		s.Logger.Info("no customer email available, skipping customer confirmation",
			zap.String("slotId", n.SlotID))
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject := fmt.Sprintf("Booking confirmed for %s %s", n.Date, n.Time)
			if err := s.Mailer.Send(ctx, n.CustomerEmail, subject, customerBody(n)); err != nil {
				s.Logger.Warn("failed to send customer confirmation",
					zap.String("slotId", n.SlotID), zap.Error(err))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		subject := fmt.Sprintf("New booking: %s %s", n.Date, n.Time)
		if err := s.Mailer.Send(ctx, s.AdminEmail, subject, adminBody(n)); err != nil {
			s.Logger.Warn("failed to send admin notification",
				zap.String("slotId", n.SlotID), zap.Error(err))
		}
	}()

	if s.FCM != nil && s.AdminFCMToken != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := &messaging.Message{
				Token: s.AdminFCMToken,
				Notification: &messaging.Notification{
					Title: "New booking",
					Body:  fmt.Sprintf("%s booked %s %s", n.CustomerName, n.Date, n.Time),
				},
				Data: map[string]string{
					"type":   "booking_confirmed",
					"slotId": n.SlotID,
				},
			}
			if _, err := s.FCM.Send(ctx, msg); err != nil {
				s.Logger.Warn("failed to send admin push",
					zap.String("slotId", n.SlotID), zap.Error(err))
			}
		}()
	}

	wg.Wait()
}

func customerBody(n BookingNotice) string {
	body := fmt.Sprintf("Hi %s,\n\nYour barber appointment is confirmed for %s at %s.",
		n.CustomerName, n.Date, n.Time)
	if n.ServiceType == models.ServiceTypeAtHome {
		body += fmt.Sprintf("\nWe will come to you at: %s.", n.Address)
	}
	body += fmt.Sprintf("\nPayment: %s%s.\n\nSee you soon!", n.PaymentType, amountSuffix(n.Amount))
	return body
}

func adminBody(n BookingNotice) string {
	email := n.CustomerEmail
	if email == "" {
		email = "not provided"
	}
	return fmt.Sprintf(
		"Slot %s (%s %s) was booked.\n\nCustomer: %s\nPhone: %s\nEmail: %s\nService: %s\nAddress: %s\nPayment: %s%s\n",
		n.SlotID, n.Date, n.Time,
		n.CustomerName, n.CustomerPhone, email,
		n.ServiceType, n.Address, n.PaymentType, amountSuffix(n.Amount),
	)
}

func amountSuffix(amount int64) string {
	if amount <= 0 {
		return ""
	}
	return fmt.Sprintf(", %d.%02d PLN", amount/100, amount%100)
}
