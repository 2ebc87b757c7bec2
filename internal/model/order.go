package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderType represents how the order was placed / is fulfilled
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine-in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePhone    OrderType = "phone"
	OrderTypeOnline   OrderType = "online"
)

// RawItems holds the items column as it is stored. The column is not
// schema-enforced and historically carries several JSON shapes, so it is
// kept opaque here and normalized by the orderitems package on read.
type RawItems json.RawMessage

// Value implements the driver.Valuer interface
func (r RawItems) Value() (driver.Value, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

// Scan implements the sql.Scanner interface
func (r *RawItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*r = append((*r)[:0], v...)
		return nil
	case string:
		*r = RawItems(v)
		return nil
	case nil:
		*r = nil
		return nil
	default:
		return errors.New("unsupported type for items column")
	}
}

// MarshalJSON passes the stored payload through untouched
func (r RawItems) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

// UnmarshalJSON stores the payload as-is
func (r *RawItems) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// Order represents an order row
type Order struct {
	ID           int64       `json:"id"`
	CustomerName string      `json:"customer_name"`
	Type         OrderType   `json:"type"`
	TableNumber  *int        `json:"table_number,omitempty"`
	Items        RawItems    `json:"items"`
	Total        string      `json:"total"`
	Status       OrderStatus `json:"status"`
	AIProcessed  bool        `json:"ai_processed"`
	OrderTime    time.Time   `json:"order_time"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
