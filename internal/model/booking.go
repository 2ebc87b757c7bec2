package model

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusSeated    BookingStatus = "seated"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// ValidBookingStatus reports whether s is a known booking status
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusSeated,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	default:
		return false
	}
}

// BookingSource represents where the booking came from
type BookingSource string

const (
	BookingSourcePhone   BookingSource = "phone"
	BookingSourceWeb     BookingSource = "web"
	BookingSourceChatbot BookingSource = "chatbot"
	BookingSourceWalkIn  BookingSource = "walk-in"
)

// Booking represents a table or function booking row
type Booking struct {
	ID              int64         `json:"id"`
	CustomerName    string        `json:"customer_name"`
	BookingTime     time.Time     `json:"booking_time"`
	PartySize       int           `json:"party_size"`
	Status          BookingStatus `json:"status"`
	SpecialOccasion *string       `json:"special_occasion,omitempty"`
	Notes           *string       `json:"notes,omitempty"`
	Source          BookingSource `json:"source"`
	AIProcessed     bool          `json:"ai_processed"`
	CreatedAt       time.Time     `json:"created_at"`
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
