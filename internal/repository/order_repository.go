package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/pkg/database"
)

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *database.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, customer_name, type, table_number, items, total, status, ai_processed, order_time, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	o := &model.Order{}
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.Type,
		&o.TableNumber,
		&o.Items,
		&o.Total,
		&o.Status,
		&o.AIProcessed,
		&o.OrderTime,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new order and returns its assigned id
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) error {
	if o.CustomerName == "" {
		return ErrInvalidData
	}

	query := `
		INSERT INTO orders (
			customer_name, type, table_number, items, total,
			status, ai_processed, order_time, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	now := time.Now()
	if o.OrderTime.IsZero() {
		o.OrderTime = now
	}
	if o.Status == "" {
		o.Status = model.OrderStatusNew
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, query,
		o.CustomerName, o.Type, o.TableNumber, o.Items, o.Total,
		o.Status, o.AIProcessed, o.OrderTime, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID gets an order by its id
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

// List returns paginated orders newest first, optionally filtered by status
func (r *OrderRepository) List(ctx context.Context, page, limit int, status model.OrderStatus) ([]*model.Order, int, error) {
	var whereClause string
	var args []interface{}

	if status != "" {
		whereClause = " WHERE status = $1"
		args = append(args, status)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders%s`, whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s FROM orders%s
		ORDER BY order_time DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, whereClause, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []*model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, total, nil
}

// ListSince returns orders created after the (time, id) watermark, newest
// first. The id tie-break catches rows committed with an identical timestamp.
func (r *OrderRepository) ListSince(ctx context.Context, since time.Time, afterID int64) ([]*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE created_at > $1 OR (created_at = $1 AND id > $2)
		ORDER BY created_at DESC, id DESC
	`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, since, afterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []*model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus updates just the status of an order under a row lock
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var currentStatus model.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&currentStatus)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		orderID, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update patches the mutable fields of an order
func (r *OrderRepository) Update(ctx context.Context, o *model.Order) error {
	if o.ID == 0 {
		return ErrInvalidData
	}

	query := `
		UPDATE orders
		SET customer_name = $2, type = $3, table_number = $4, items = $5,
		    total = $6, status = $7, ai_processed = $8, updated_at = $9
		WHERE id = $1
	`

	o.UpdatedAt = time.Now()

	ct, err := r.db.ExecContext(ctx, query,
		o.ID, o.CustomerName, o.Type, o.TableNumber, o.Items,
		o.Total, o.Status, o.AIProcessed, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}
