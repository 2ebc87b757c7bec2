package model

import "time"

// Call represents a logged phone call
type Call struct {
	ID           int64     `json:"id"`
	CallerName   string    `json:"caller_name"`
	CallerNumber string    `json:"caller_number"`
	CallTime     time.Time `json:"call_time"`
	DurationSecs int       `json:"duration_secs"`
	Status       string    `json:"status"`
	Transcript   *string   `json:"transcript,omitempty"`
}

// TableName returns the table name for the Call model
func (Call) TableName() string { return "calls" }

// Chat represents a chatbot conversation
type Chat struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	CustomerName string    `json:"customer_name"`
	LastMessage  string    `json:"last_message"`
	Status       string    `json:"status"`
	StartedAt    time.Time `json:"started_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for the Chat model
func (Chat) TableName() string { return "chats" }

// Review represents a customer review
type Review struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Source       string    `json:"source"`
	Responded    bool      `json:"responded"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the table name for the Review model
func (Review) TableName() string { return "reviews" }

// SocialInteraction represents a social-media mention or message
type SocialInteraction struct {
	ID        int64     `json:"id"`
	Platform  string    `json:"platform"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the SocialInteraction model
func (SocialInteraction) TableName() string { return "social_interactions" }

// InventoryItem represents a stock item
type InventoryItem struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	ReorderLevel float64   `json:"reorder_level"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string { return "inventory_items" }
