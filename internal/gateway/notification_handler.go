package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

// NotificationService is the surface of the notification service the
// gateway needs
type NotificationService interface {
	List(ctx context.Context, limit int) ([]*model.Notification, error)
	ListUnread(ctx context.Context) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (int64, error)
	Create(ctx context.Context, n *model.Notification) error
}

// NotificationHandler handles notification API endpoints
type NotificationHandler struct {
	notifications NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterRoutes registers the notification API routes
func (h *NotificationHandler) RegisterRoutes(router *gin.Engine) {
	notifications := router.Group("/api/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("", h.Create)
		notifications.GET("/unread", h.ListUnread)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
	}
}

// List returns the most recent notifications
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	notifications, err := h.notifications.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// Create inserts a notification row. External automations post here; the
// poller picks the row up on its next unread cycle.
func (h *NotificationHandler) Create(c *gin.Context) {
	var request struct {
		Type    model.NotificationType `json:"type" binding:"required"`
		Message string                 `json:"message" binding:"required"`
		Details model.Details          `json:"details"`
		UserID  int64                  `json:"user_id"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n := &model.Notification{
		Type:    request.Type,
		Message: request.Message,
		Details: request.Details,
		UserID:  request.UserID,
	}
	if err := h.notifications.Create(c.Request.Context(), n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, n)
}

// ListUnread returns every unread notification
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	notifications, err := h.notifications.ListUnread(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unread notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead marks one notification read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notification ID must be an integer"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllRead marks every unread notification read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count, err := h.notifications.MarkAllRead(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": count})
}
