package models

import (
	"fmt"
	"strconv"
)

// AmountUnknown is stored when the metadata carried no parseable amount.
// Callers log a warning when they see it; the booking itself still proceeds.
const AmountUnknown int64 = -1

// BookingIntent is the business data describing a desired booking. It is
// created when a checkout session is opened, carried through the payment
// provider as a flat string metadata map, and decoded again when the
// completion webhook arrives. It is never persisted on its own.
type BookingIntent struct {
	SlotID        string
	Date          string
	Time          string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceType   ServiceType
	Address       string
	Amount        int64
}

// MissingFieldError reports a required intent field absent from provider
// metadata.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("booking intent metadata missing required field %q", e.Field)
}

// Metadata flattens the intent into the string-only map the payment
// provider accepts. Optional fields are encoded as empty strings so that
// every key is always present on the way back.
func (bi BookingIntent) Metadata() map[string]string {
	return map[string]string{
		"slotId":        bi.SlotID,
		"date":          bi.Date,
		"time":          bi.Time,
		"customerName":  bi.CustomerName,
		"customerPhone": bi.CustomerPhone,
		"customerEmail": bi.CustomerEmail,
		"serviceType":   string(bi.ServiceType),
		"address":       bi.Address,
		"amount":        strconv.FormatInt(bi.Amount, 10),
	}
}

// IntentFromMetadata rebuilds a BookingIntent from provider metadata.
// slotId, customerName and customerPhone are required; everything else
// tolerates being absent or empty. An absent or unparseable amount decodes
// to AmountUnknown rather than failing the whole event.
func IntentFromMetadata(md map[string]string) (BookingIntent, error) {
	for _, field := range []string{"slotId", "customerName", "customerPhone"} {
		if md[field] == "" {
			return BookingIntent{}, &MissingFieldError{Field: field}
		}
	}

	bi := BookingIntent{
		SlotID:        md["slotId"],
		Date:          md["date"],
		Time:          md["time"],
		CustomerName:  md["customerName"],
		CustomerPhone: md["customerPhone"],
		CustomerEmail: md["customerEmail"],
		ServiceType:   ServiceType(md["serviceType"]),
		Address:       md["address"],
	}

	amount, err := strconv.ParseInt(md["amount"], 10, 64)
	if err != nil || amount <= 0 {
		bi.Amount = AmountUnknown
	} else {
		bi.Amount = amount
	}
	return bi, nil
}
