package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/orderitems"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

// OrderService handles the business logic for orders
type OrderService struct {
	repo   *repository.OrderRepository
	parser *orderitems.Parser
	log    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repo *repository.OrderRepository, parser *orderitems.Parser, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{repo: repo, parser: parser, log: log}
}

// List returns paginated orders, optionally filtered by status
func (s *OrderService) List(ctx context.Context, page, limit int, status model.OrderStatus) ([]*model.Order, int, error) {
	if status != "" && !model.ValidOrderStatus(status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", repository.ErrInvalidData, status)
	}
	return s.repo.List(ctx, page, limit, status)
}

// ListSince returns orders created after the (time, id) watermark, newest first
func (s *OrderService) ListSince(ctx context.Context, since time.Time, afterID int64) ([]*model.Order, error) {
	return s.repo.ListSince(ctx, since, afterID)
}

// Get returns one order
func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Items returns the normalized item list of an order. Malformed payloads
// degrade to an empty list; the dashboard never sees a parse failure.
func (s *OrderService) Items(ctx context.Context, id int64) ([]orderitems.Item, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse([]byte(order.Items)), nil
}

// SetStatus transitions an order to the given status. It is the single call
// behind alert accept ("processing") and dismiss ("new").
func (s *OrderService) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !model.ValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown status %q", repository.ErrInvalidData, status)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.log.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)))
	return nil
}

// Update patches an order row
func (s *OrderService) Update(ctx context.Context, o *model.Order) error {
	if o.Status != "" && !model.ValidOrderStatus(o.Status) {
		return fmt.Errorf("%w: unknown status %q", repository.ErrInvalidData, o.Status)
	}
	return s.repo.Update(ctx, o)
}
