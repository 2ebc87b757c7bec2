package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/repository"
)

type fakeBookings struct {
	statusErr error
	updated   []model.BookingStatus
}

func (f *fakeBookings) List(context.Context, int) ([]*model.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) Get(context.Context, int64) (*model.Booking, error) {
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookings) Create(context.Context, *model.Booking) error {
	return nil
}

func (f *fakeBookings) SetStatus(_ context.Context, _ int64, status model.BookingStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.updated = append(f.updated, status)
	return nil
}

func newBookingRouter(svc *fakeBookings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookingHandler(svc).RegisterRoutes(router)
	return router
}

func patchBookingStatus(router *gin.Engine, id, status string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/"+id,
		strings.NewReader(`{"status":"`+status+`"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateBookingStatus(t *testing.T) {
	svc := &fakeBookings{}
	router := newBookingRouter(svc)

	w := patchBookingStatus(router, "7", "confirmed")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []model.BookingStatus{model.BookingStatusConfirmed}, svc.updated)
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	svc := &fakeBookings{statusErr: repository.ErrInvalidData}
	router := newBookingRouter(svc)

	w := patchBookingStatus(router, "7", "brunch")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookingStatusUnknownIDReturns404(t *testing.T) {
	svc := &fakeBookings{statusErr: repository.ErrBookingNotFound}
	router := newBookingRouter(svc)

	w := patchBookingStatus(router, "99", "confirmed")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingUnknownIDReturns404(t *testing.T) {
	router := newBookingRouter(&fakeBookings{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
