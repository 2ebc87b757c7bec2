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

// ChatService is the surface of the chat service the gateway needs
type ChatService interface {
	List(ctx context.Context, limit int) ([]*model.Chat, error)
	Forward(ctx context.Context, chatID int64, message string) error
}

// DashboardHandler serves the read-mostly dashboard pages: calls, chats,
// reviews, social media and inventory.
type DashboardHandler struct {
	repo  *repository.DashboardRepository
	chats ChatService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(repo *repository.DashboardRepository, chats ChatService) *DashboardHandler {
	return &DashboardHandler{repo: repo, chats: chats}
}

// RegisterRoutes registers the dashboard API routes
func (h *DashboardHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/calls", h.ListCalls)
		api.GET("/chats", h.ListChats)
		api.POST("/chats/:id/message", h.SendChatMessage)
		api.GET("/reviews", h.ListReviews)
		api.GET("/social", h.ListSocialInteractions)
		api.GET("/inventory", h.ListInventory)
	}
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return limit
}

// ListCalls returns logged calls
func (h *DashboardHandler) ListCalls(c *gin.Context) {
	calls, err := h.repo.ListCalls(c.Request.Context(), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list calls"})
		return
	}
	c.JSON(http.StatusOK, calls)
}

// ListChats returns chat conversations
func (h *DashboardHandler) ListChats(c *gin.Context) {
	chats, err := h.chats.List(c.Request.Context(), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list chats"})
		return
	}
	c.JSON(http.StatusOK, chats)
}

// SendChatMessage forwards a dashboard reply to the chatbot webhook. The
// forward is fire-and-forget: a webhook failure surfaces here once and is
// never retried.
func (h *DashboardHandler) SendChatMessage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat ID must be an integer"})
		return
	}

	var request struct {
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chats.Forward(c.Request.Context(), id, request.Message); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach chatbot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListReviews returns customer reviews
func (h *DashboardHandler) ListReviews(c *gin.Context) {
	reviews, err := h.repo.ListReviews(c.Request.Context(), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListSocialInteractions returns social-media interactions
func (h *DashboardHandler) ListSocialInteractions(c *gin.Context) {
	interactions, err := h.repo.ListSocialInteractions(c.Request.Context(), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list social interactions"})
		return
	}
	c.JSON(http.StatusOK, interactions)
}

// ListInventory returns inventory items
func (h *DashboardHandler) ListInventory(c *gin.Context) {
	items, err := h.repo.ListInventory(c.Request.Context(), queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inventory"})
		return
	}
	c.JSON(http.StatusOK, items)
}
