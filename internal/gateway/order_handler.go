package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/orderitems"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

// OrderService is the surface of the order service the gateway needs
type OrderService interface {
	List(ctx context.Context, page, limit int, status model.OrderStatus) ([]*model.Order, int, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	Items(ctx context.Context, id int64) ([]orderitems.Item, error)
	Update(ctx context.Context, o *model.Order) error
}

// OrderHandler handles order API endpoints
type OrderHandler struct {
	orders OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers the order API routes
func (h *OrderHandler) RegisterRoutes(router *gin.Engine) {
	orders := router.Group("/api/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.GET("/:id/items", h.Items)
		orders.PATCH("/:id", h.Update)
	}
}

// List returns paginated orders, optionally filtered by status
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := model.OrderStatus(c.DefaultQuery("status", ""))

	orders, total, err := h.orders.List(c.Request.Context(), page, limit, status)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// Get returns one order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order ID must be an integer"})
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// Items returns the normalized item list for an order row. The raw column
// may hold any of the historical shapes; a payload nothing understands comes
// back as an empty list, never an error.
func (h *OrderHandler) Items(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order ID must be an integer"})
		return
	}

	items, err := h.orders.Items(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Update patches the mutable fields of an order
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order ID must be an integer"})
		return
	}

	var request struct {
		CustomerName *string `json:"customer_name"`
		Type         *string `json:"type"`
		TableNumber  *int    `json:"table_number"`
		Total        *string `json:"total"`
		Status       *string `json:"status"`
		AIProcessed  *bool   `json:"ai_processed"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}

	if request.CustomerName != nil {
		order.CustomerName = *request.CustomerName
	}
	if request.Type != nil {
		order.Type = model.OrderType(*request.Type)
	}
	if request.TableNumber != nil {
		order.TableNumber = request.TableNumber
	}
	if request.Total != nil {
		order.Total = *request.Total
	}
	if request.Status != nil {
		order.Status = model.OrderStatus(*request.Status)
	}
	if request.AIProcessed != nil {
		order.AIProcessed = *request.AIProcessed
	}

	if err := h.orders.Update(c.Request.Context(), order); err != nil {
		if errors.Is(err, repository.ErrInvalidData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, order)
}
