package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

// BookingService is the surface of the booking service the gateway needs
type BookingService interface {
	List(ctx context.Context, limit int) ([]*model.Booking, error)
	Get(ctx context.Context, id int64) (*model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	SetStatus(ctx context.Context, id int64, status model.BookingStatus) error
}

// BookingHandler handles booking API endpoints
type BookingHandler struct {
	bookings BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// RegisterRoutes registers the booking API routes
func (h *BookingHandler) RegisterRoutes(router *gin.Engine) {
	bookings := router.Group("/api/bookings")
	{
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.POST("", h.Create)
		bookings.PATCH("/:id", h.UpdateStatus)
	}
}

// List returns upcoming bookings
func (h *BookingHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	bookings, err := h.bookings.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Get returns one booking
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking ID must be an integer"})
		return
	}

	booking, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Create records a new booking
func (h *BookingHandler) Create(c *gin.Context) {
	var request struct {
		CustomerName    string  `json:"customer_name" binding:"required"`
		BookingTime     string  `json:"booking_time" binding:"required"`
		PartySize       int     `json:"party_size" binding:"required"`
		SpecialOccasion *string `json:"special_occasion"`
		Notes           *string `json:"notes"`
		Source          string  `json:"source"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookingTime, err := time.Parse(time.RFC3339, request.BookingTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_time must be RFC3339"})
		return
	}

	booking := &model.Booking{
		CustomerName:    request.CustomerName,
		BookingTime:     bookingTime,
		PartySize:       request.PartySize,
		SpecialOccasion: request.SpecialOccasion,
		Notes:           request.Notes,
		Source:          model.BookingSource(request.Source),
	}

	if err := h.bookings.Create(c.Request.Context(), booking); err != nil {
		if errors.Is(err, repository.ErrInvalidData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// UpdateStatus updates the status of a booking
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking ID must be an integer"})
		return
	}

	var request struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.bookings.SetStatus(c.Request.Context(), id, model.BookingStatus(request.Status)); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidData):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
