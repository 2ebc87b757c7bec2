package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/pkg/database"
)

// DashboardRepository handles database reads for the remaining dashboard
// pages: calls, chats, reviews, social media and inventory.
type DashboardRepository struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

// ListCalls returns logged calls newest first
func (r *DashboardRepository) ListCalls(ctx context.Context, limit int) ([]*model.Call, error) {
	query := `
		SELECT id, caller_name, caller_number, call_time, duration_secs, status, transcript
		FROM calls
		ORDER BY call_time DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query calls: %w", err)
	}
	defer rows.Close()

	calls := []*model.Call{}
	for rows.Next() {
		c := &model.Call{}
		err := rows.Scan(&c.ID, &c.CallerName, &c.CallerNumber, &c.CallTime,
			&c.DurationSecs, &c.Status, &c.Transcript)
		if err != nil {
			return nil, fmt.Errorf("failed to scan call: %w", err)
		}
		calls = append(calls, c)
	}

	return calls, rows.Err()
}

// ListChats returns chat conversations most recently updated first
func (r *DashboardRepository) ListChats(ctx context.Context, limit int) ([]*model.Chat, error) {
	query := `
		SELECT id, session_id, customer_name, last_message, status, started_at, updated_at
		FROM chats
		ORDER BY updated_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	chats := []*model.Chat{}
	for rows.Next() {
		c := &model.Chat{}
		err := rows.Scan(&c.ID, &c.SessionID, &c.CustomerName, &c.LastMessage,
			&c.Status, &c.StartedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}

	return chats, rows.Err()
}

// GetChatByID gets a chat conversation by its id
func (r *DashboardRepository) GetChatByID(ctx context.Context, id int64) (*model.Chat, error) {
	query := `
		SELECT id, session_id, customer_name, last_message, status, started_at, updated_at
		FROM chats
		WHERE id = $1
	`

	c := &model.Chat{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.SessionID, &c.CustomerName, &c.LastMessage,
		&c.Status, &c.StartedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	return c, nil
}

// ListReviews returns reviews newest first
func (r *DashboardRepository) ListReviews(ctx context.Context, limit int) ([]*model.Review, error) {
	query := `
		SELECT id, customer_name, rating, comment, source, responded, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*model.Review{}
	for rows.Next() {
		rv := &model.Review{}
		err := rows.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment,
			&rv.Source, &rv.Responded, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	return reviews, rows.Err()
}

// ListSocialInteractions returns social-media interactions newest first
func (r *DashboardRepository) ListSocialInteractions(ctx context.Context, limit int) ([]*model.SocialInteraction, error) {
	query := `
		SELECT id, platform, username, content, kind, created_at
		FROM social_interactions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query social interactions: %w", err)
	}
	defer rows.Close()

	interactions := []*model.SocialInteraction{}
	for rows.Next() {
		si := &model.SocialInteraction{}
		err := rows.Scan(&si.ID, &si.Platform, &si.Username, &si.Content, &si.Kind, &si.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan social interaction: %w", err)
		}
		interactions = append(interactions, si)
	}

	return interactions, rows.Err()
}

// ListInventory returns inventory items ordered by name
func (r *DashboardRepository) ListInventory(ctx context.Context, limit int) ([]*model.InventoryItem, error) {
	query := `
		SELECT id, name, category, quantity, unit, reorder_level, updated_at
		FROM inventory_items
		ORDER BY name ASC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	items := []*model.InventoryItem{}
	for rows.Next() {
		it := &model.InventoryItem{}
		err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity,
			&it.Unit, &it.ReorderLevel, &it.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
