package gateway

import (
	"context"
	"encoding/json"
	"errors"
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

type fakeNotifications struct {
	unread   []*model.Notification
	created  *model.Notification
	markedID int64
	markErr  error
}

func (f *fakeNotifications) List(context.Context, int) ([]*model.Notification, error) {
	return f.unread, nil
}

func (f *fakeNotifications) ListUnread(context.Context) ([]*model.Notification, error) {
	return f.unread, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id int64) error {
	f.markedID = id
	return f.markErr
}

func (f *fakeNotifications) MarkAllRead(context.Context) (int64, error) {
	return int64(len(f.unread)), nil
}

func (f *fakeNotifications) Create(_ context.Context, n *model.Notification) error {
	n.ID = 101
	f.created = n
	return nil
}

func newNotificationRouter(svc *fakeNotifications) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewNotificationHandler(svc).RegisterRoutes(router)
	return router
}

func TestListUnreadEndpoint(t *testing.T) {
	svc := &fakeNotifications{unread: []*model.Notification{
		{ID: 1, Type: model.NotificationTypeOrder, Message: "New order"},
	}}
	router := newNotificationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestCreateNotificationEndpoint(t *testing.T) {
	svc := &fakeNotifications{}
	router := newNotificationRouter(svc)

	body := `{"type":"order","message":"New order received","details":{"order_id":42}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, model.NotificationTypeOrder, svc.created.Type)

	id, ok := svc.created.OrderID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestCreateNotificationRequiresTypeAndMessage(t *testing.T) {
	router := newNotificationRouter(&fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/notifications", strings.NewReader(`{"message":"no type"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkReadEndpoint(t *testing.T) {
	svc := &fakeNotifications{}
	router := newNotificationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/17/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(17), svc.markedID)
}

func TestMarkReadRejectsNonIntegerID(t *testing.T) {
	router := newNotificationRouter(&fakeNotifications{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/seventeen/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkReadUnknownIDReturns404(t *testing.T) {
	svc := &fakeNotifications{markErr: repository.ErrNotificationNotFound}
	router := newNotificationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/99/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkReadInternalErrorReturns500(t *testing.T) {
	svc := &fakeNotifications{markErr: errors.New("db down")}
	router := newNotificationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/notifications/99/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
