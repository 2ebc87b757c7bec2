package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// NotificationType defines the type of notification
type NotificationType string

const (
	// NotificationTypeCall represents an incoming phone call notification
	NotificationTypeCall NotificationType = "call"

	// NotificationTypeBooking represents a table booking notification
	NotificationTypeBooking NotificationType = "booking"

	// NotificationTypeOrder represents a new order notification
	NotificationTypeOrder NotificationType = "order"

	// NotificationTypeReview represents a customer review notification
	NotificationTypeReview NotificationType = "review"

	// NotificationTypeChat represents a chat message notification
	NotificationTypeChat NotificationType = "chat"

	// NotificationTypeFunctionBooking represents a function room booking notification
	NotificationTypeFunctionBooking NotificationType = "function_booking"

	// NotificationTypeOther represents any other notification
	NotificationTypeOther NotificationType = "other"
)

// Details is a map of string keys to arbitrary values attached to a notification
type Details map[string]interface{}

// Value implements the driver.Valuer interface for JSON serialization
func (d Details) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for JSON deserialization
func (d *Details) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, d)
}

// Notification represents a notification row created by a business event.
// It is never deleted, only transitioned unread -> read.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Details   Details          `json:"details"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	UserID    int64            `json:"user_id"`
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// OrderID extracts the referenced order id from the details payload, if any
func (n Notification) OrderID() (int64, bool) {
	raw, ok := n.Details["order_id"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	default:
		return 0, false
	}
}
