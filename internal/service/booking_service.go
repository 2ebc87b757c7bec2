package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

// BookingService handles the business logic for bookings
type BookingService struct {
	repo          *repository.BookingRepository
	notifications *repository.NotificationRepository
	log           *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(repo *repository.BookingRepository, notifications *repository.NotificationRepository, log *zap.Logger) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{repo: repo, notifications: notifications, log: log}
}

// List returns upcoming bookings
func (s *BookingService) List(ctx context.Context, limit int) ([]*model.Booking, error) {
	return s.repo.List(ctx, limit)
}

// Get returns one booking
func (s *BookingService) Get(ctx context.Context, id int64) (*model.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// Create records a new booking and raises the notification that feeds the
// alert pipeline. A notification write failure does not fail the booking.
func (s *BookingService) Create(ctx context.Context, b *model.Booking) error {
	if b.Source == "" {
		b.Source = model.BookingSourceWeb
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return err
	}

	notificationType := model.NotificationTypeBooking
	if b.SpecialOccasion != nil && *b.SpecialOccasion == "function" {
		notificationType = model.NotificationTypeFunctionBooking
	}

	n := &model.Notification{
		Type:    notificationType,
		Message: fmt.Sprintf("New booking for %s, party of %d", b.CustomerName, b.PartySize),
		Details: model.Details{
			"booking_id":   b.ID,
			"booking_time": b.BookingTime,
		},
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Warn("failed to create booking notification",
			zap.Int64("booking_id", b.ID), zap.Error(err))
	}

	return nil
}

// SetStatus updates a booking's status
func (s *BookingService) SetStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	if !model.ValidBookingStatus(status) {
		return fmt.Errorf("%w: unknown status %q", repository.ErrInvalidData, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
