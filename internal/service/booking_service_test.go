package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

func TestBookingSetStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewBookingService(nil, nil, nil)

	for _, status := range []model.BookingStatus{"", "brunch", "PENDING", "no-show"} {
		err := svc.SetStatus(context.Background(), 1, status)
		require.ErrorIs(t, err, repository.ErrInvalidData, "status %q", status)
	}
}

func TestValidBookingStatuses(t *testing.T) {
	for _, status := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusSeated,
		model.BookingStatusCompleted,
		model.BookingStatusCancelled,
		model.BookingStatusNoShow,
	} {
		assert.True(t, model.ValidBookingStatus(status), "status %q", status)
	}
}
