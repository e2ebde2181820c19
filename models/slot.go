package models

import "time"

// SlotStatus is the lifecycle state of a bookable slot.
// The only legal transition is available -> booked; a booked slot is never
// released automatically.
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

type PaymentType string

const (
	PaymentTypeCash PaymentType = "cash"
	PaymentTypeCard PaymentType = "card"
)

type ServiceType string

const (
	ServiceTypeInShop ServiceType = "inShop"
	ServiceTypeAtHome ServiceType = "atHome"
)

// Slot represents one bookable time unit in the slot store.
// The same struct is persisted by both store backends, hence the double tags.
type Slot struct {
	ID            string      `bson:"_id" firestore:"-" json:"id"`
	Date          string      `bson:"date" firestore:"date" json:"date"`
	Time          string      `bson:"time" firestore:"time" json:"time"`
	Status        SlotStatus  `bson:"status" firestore:"status" json:"status"`
	CustomerName  string      `bson:"customerName,omitempty" firestore:"customerName" json:"customerName,omitempty"`
	CustomerPhone string      `bson:"customerPhone,omitempty" firestore:"customerPhone" json:"customerPhone,omitempty"`
	CustomerEmail string      `bson:"customerEmail,omitempty" firestore:"customerEmail" json:"customerEmail,omitempty"`
	PaymentType   PaymentType `bson:"paymentType,omitempty" firestore:"paymentType" json:"paymentType,omitempty"`
	ServiceType   ServiceType `bson:"serviceType,omitempty" firestore:"serviceType" json:"serviceType,omitempty"`
	Address       string      `bson:"address,omitempty" firestore:"address" json:"address,omitempty"`
	Amount        int64       `bson:"amount,omitempty" firestore:"amount" json:"amount,omitempty"`
	BookedAt      *time.Time  `bson:"bookedAt,omitempty" firestore:"bookedAt" json:"bookedAt,omitempty"`
}

// BookingDetails carries the fields a successful booking writes onto a slot.
// The repository applies them only when the slot is still available.
type BookingDetails struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	PaymentType   PaymentType
	ServiceType   ServiceType
	Address       string
	Amount        int64
	BookedAt      time.Time
}
