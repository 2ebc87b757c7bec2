package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/pkg/database"
)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db *database.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, customer_name, booking_time, party_size, status, special_occasion, notes, source, ai_processed, created_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	b := &model.Booking{}
	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.BookingTime,
		&b.PartySize,
		&b.Status,
		&b.SpecialOccasion,
		&b.Notes,
		&b.Source,
		&b.AIProcessed,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a new booking and returns its assigned id
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	if b.CustomerName == "" || b.PartySize < 1 {
		return ErrInvalidData
	}

	query := `
		INSERT INTO bookings (
			customer_name, booking_time, party_size, status,
			special_occasion, notes, source, ai_processed, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	if b.Status == "" {
		b.Status = model.BookingStatusPending
	}
	b.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		b.CustomerName, b.BookingTime, b.PartySize, b.Status,
		b.SpecialOccasion, b.Notes, b.Source, b.AIProcessed, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID gets a booking by its id
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

// List returns bookings with the soonest booking time first
func (r *BookingRepository) List(ctx context.Context, limit int) ([]*model.Booking, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		ORDER BY booking_time ASC
		LIMIT $1
	`, bookingColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus updates just the status of a booking
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	ct, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}
