package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/pkg/database"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, type, message, details, is_read, created_at, read_at, user_id`

func scanNotification(row pgx.Row) (*model.Notification, error) {
	n := &model.Notification{}
	err := row.Scan(
		&n.ID,
		&n.Type,
		&n.Message,
		&n.Details,
		&n.IsRead,
		&n.CreatedAt,
		&n.ReadAt,
		&n.UserID,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a new notification and returns its assigned id
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.Type == "" {
		return ErrInvalidData
	}

	query := `
		INSERT INTO notifications (type, message, details, is_read, created_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	err := r.db.QueryRowContext(ctx, query,
		n.Type, n.Message, n.Details, n.IsRead, n.CreatedAt, n.UserID,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetByID gets a notification by its id
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1`, notificationColumns)

	n, err := scanNotification(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// List returns notifications newest first, capped at limit
func (r *NotificationRepository) List(ctx context.Context, limit int) ([]*model.Notification, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT %s FROM notifications
		ORDER BY created_at DESC
		LIMIT $1
	`, notificationColumns)

	return r.list(ctx, query, limit)
}

// ListUnread returns unread notifications newest first
func (r *NotificationRepository) ListUnread(ctx context.Context) ([]*model.Notification, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM notifications
		WHERE is_read = FALSE
		ORDER BY created_at DESC
	`, notificationColumns)

	return r.list(ctx, query)
}

func (r *NotificationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead transitions a notification from unread to read. The transition is
// one-way; marking an already-read notification is a no-op that still succeeds.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, $2)
		WHERE id = $1
	`

	ct, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead transitions every unread notification to read and returns the count
func (r *NotificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = $1
		WHERE is_read = FALSE
	`

	ct, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return ct.RowsAffected(), nil
}
