package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Valid reports whether s is one of the known statuses
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// BookingDateLayout is the wire format of Booking.Date
const BookingDateLayout = "2006-01-02"

// Booking is priced either against a provider (ProviderID set) or against a
// generic product from the tier table (ProductType set), never both.
type Booking struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	TouristID    primitive.ObjectID  `json:"touristId" bson:"touristId"`
	ProviderID   *primitive.ObjectID `json:"providerId,omitempty" bson:"providerId,omitempty"`
	ProductType  string              `json:"productType,omitempty" bson:"productType,omitempty"`
	Date         time.Time           `json:"date" bson:"date"`
	Time         string              `json:"time" bson:"time"`
	Adults       int                 `json:"adults" bson:"adults"`
	Children     int                 `json:"children" bson:"children"`
	Status       BookingStatus       `json:"status" bson:"status"`
	TotalPrice   float64             `json:"totalPrice" bson:"totalPrice"`
	SpecialNotes string              `json:"specialNotes,omitempty" bson:"specialNotes,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// BookingRequest is the body of the booking create and quote endpoints.
// Adults and Children are pointers so that "missing" and "zero" differ.
type BookingRequest struct {
	TouristID    string `json:"touristId"`
	ProviderID   string `json:"providerId,omitempty"`
	ProductType  string `json:"productType,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Adults       *int   `json:"adults"`
	Children     *int   `json:"children,omitempty"`
	SpecialNotes string `json:"specialNotes,omitempty"`
	Status       string `json:"status,omitempty"`
}

// Quote is the priced result of a booking request that has not been stored
type Quote struct {
	ProviderID  string  `json:"providerId,omitempty"`
	ProductType string  `json:"productType,omitempty"`
	Adults      int     `json:"adults"`
	Children    int     `json:"children"`
	PartySize   int     `json:"partySize"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}
