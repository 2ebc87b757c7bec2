package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/alert"
)

// AlertPresenter is the surface of the alert presenter the gateway needs
type AlertPresenter interface {
	Active() (alert.Alert, bool)
	QueuedCount() int
	Accept(ctx context.Context, alertID string) error
	Dismiss(ctx context.Context, alertID string) error
}

// Interactor receives user-gesture signals for the sound dispatcher
type Interactor interface {
	Interaction()
}

// AlertHandler handles the alert API: the SSE event stream the dashboard
// listens on, accept/dismiss actions, and the interaction signal that
// unblocks sound playback.
type AlertHandler struct {
	presenter AlertPresenter
	sound     Interactor
	events    *alert.Broadcaster
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(presenter AlertPresenter, sound Interactor, events *alert.Broadcaster) *AlertHandler {
	return &AlertHandler{presenter: presenter, sound: sound, events: events}
}

// RegisterRoutes registers the alert API routes
func (h *AlertHandler) RegisterRoutes(router *gin.Engine) {
	alerts := router.Group("/api/alerts")
	{
		alerts.GET("/stream", h.Stream)
		alerts.GET("/active", h.ActiveAlert)
		alerts.POST("/:id/accept", h.Accept)
		alerts.POST("/:id/dismiss", h.Dismiss)
	}

	router.POST("/api/interactions", h.Interaction)
}

// Stream pushes alert and toast events to the dashboard using Server-Sent Events
func (h *AlertHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events, cancel := h.events.Subscribe()
	defer cancel()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			return
		case e, ok := <-events:
			if !ok {
				return
			}

			data, err := json.Marshal(e)
			if err != nil {
				continue
			}

			c.SSEvent(string(e.Type), string(data))
			c.Writer.Flush()
		}
	}
}

// ActiveAlert returns the currently shown alert and the queue depth
func (h *AlertHandler) ActiveAlert(c *gin.Context) {
	response := gin.H{
		"active": nil,
		"queued": h.presenter.QueuedCount(),
	}
	if a, ok := h.presenter.Active(); ok {
		response["active"] = a
	}
	c.JSON(http.StatusOK, response)
}

// Accept resolves the active alert as accepted
func (h *AlertHandler) Accept(c *gin.Context) {
	h.resolve(c, h.presenter.Accept)
}

// Dismiss resolves the active alert as dismissed
func (h *AlertHandler) Dismiss(c *gin.Context) {
	h.resolve(c, h.presenter.Dismiss)
}

func (h *AlertHandler) resolve(c *gin.Context, action func(ctx context.Context, alertID string) error) {
	alertID := c.Param("id")
	if alertID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert ID is required"})
		return
	}

	if err := action(c.Request.Context(), alertID); err != nil {
		switch {
		case errors.Is(err, alert.ErrAlertNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		case errors.Is(err, alert.ErrAlertNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Alert is not active"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve alert"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Interaction records a user gesture, unblocking any parked sound playback
func (h *AlertHandler) Interaction(c *gin.Context) {
	h.sound.Interaction()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
