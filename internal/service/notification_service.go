package service

import (
	"context"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

// NotificationService handles the business logic for notifications
type NotificationService struct {
	repo *repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the most recent notifications
func (s *NotificationService) List(ctx context.Context, limit int) ([]*model.Notification, error) {
	return s.repo.List(ctx, limit)
}

// ListUnread returns every unread notification
func (s *NotificationService) ListUnread(ctx context.Context) ([]*model.Notification, error) {
	return s.repo.ListUnread(ctx)
}

// MarkRead marks one notification read
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead marks every unread notification read and returns the count
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

// Create records a new notification from a business event
func (s *NotificationService) Create(ctx context.Context, n *model.Notification) error {
	return s.repo.Create(ctx, n)
}
