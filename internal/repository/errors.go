package repository

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrChatNotFound         = errors.New("chat not found")
	ErrInvalidData          = errors.New("invalid data")
)
