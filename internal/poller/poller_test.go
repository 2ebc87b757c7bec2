package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/alert"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/dedup"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
)

type stubNotifications struct {
	mu     sync.Mutex
	unread []*model.Notification
	err    error
}

func (s *stubNotifications) List(context.Context, int) ([]*model.Notification, error) {
	return nil, nil
}

func (s *stubNotifications) ListUnread(context.Context) ([]*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread, s.err
}

type stubOrders struct {
	mu   sync.Mutex
	rows []*model.Order
}

func (s *stubOrders) ListSince(_ context.Context, since time.Time, afterID int64) ([]*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Order
	for _, o := range s.rows {
		if o.CreatedAt.After(since) || (o.CreatedAt.Equal(since) && o.ID > afterID) {
			out = append(out, o)
		}
	}
	return out, nil
}

type recordingAlerter struct {
	mu     sync.Mutex
	queued []int64
}

func (r *recordingAlerter) Enqueue(n model.Notification) alert.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queued = append(r.queued, n.ID)
	return alert.Alert{Notification: n}
}

func (r *recordingAlerter) ids() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.queued))
	copy(out, r.queued)
	return out
}

func TestUnreadNotificationsAlertOnceAcrossCycles(t *testing.T) {
	source := &stubNotifications{unread: []*model.Notification{
		{ID: 2, Type: model.NotificationTypeOrder},
		{ID: 1, Type: model.NotificationTypeBooking},
	}}
	alerter := &recordingAlerter{}
	p := New(source, &stubOrders{}, dedup.New(dedup.NewMemoryStore(), nil), alerter,
		alert.NewBroadcaster(), nil, DefaultIntervals())

	ctx := context.Background()
	require.NoError(t, p.pollUnread(ctx))
	// same rows again: the server has not marked them read yet
	require.NoError(t, p.pollUnread(ctx))

	// alerted exactly once each, oldest first
	assert.Equal(t, []int64{1, 2}, alerter.ids())
}

func TestNewRowsAlertOnLaterCycles(t *testing.T) {
	source := &stubNotifications{unread: []*model.Notification{{ID: 1}}}
	alerter := &recordingAlerter{}
	p := New(source, &stubOrders{}, dedup.New(dedup.NewMemoryStore(), nil), alerter,
		alert.NewBroadcaster(), nil, DefaultIntervals())

	ctx := context.Background()
	require.NoError(t, p.pollUnread(ctx))

	source.mu.Lock()
	source.unread = []*model.Notification{{ID: 2}, {ID: 1}}
	source.mu.Unlock()

	require.NoError(t, p.pollUnread(ctx))

	assert.Equal(t, []int64{1, 2}, alerter.ids())
}

func TestOrdersPollRefreshesOnlyOnNewRows(t *testing.T) {
	now := time.Now()
	orders := &stubOrders{rows: []*model.Order{{ID: 1, CreatedAt: now}}}
	events := alert.NewBroadcaster()
	p := New(&stubNotifications{}, orders, dedup.New(dedup.NewMemoryStore(), nil),
		&recordingAlerter{}, events, nil, DefaultIntervals())

	ch, cancel := events.Subscribe()
	defer cancel()

	ctx := context.Background()
	require.NoError(t, p.pollOrders(ctx))

	select {
	case e := <-ch:
		assert.Equal(t, alert.EventDataRefreshed, e.Type)
	case <-time.After(time.Second):
		t.Fatal("no refresh event for the first cycle")
	}

	// nothing new: quiet cycle
	require.NoError(t, p.pollOrders(ctx))
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %q on an empty cycle", e.Type)
	default:
	}

	orders.mu.Lock()
	orders.rows = append([]*model.Order{{ID: 2, CreatedAt: now.Add(time.Minute)}}, orders.rows...)
	orders.mu.Unlock()

	require.NoError(t, p.pollOrders(ctx))
	select {
	case e := <-ch:
		assert.Equal(t, alert.EventDataRefreshed, e.Type)
	case <-time.After(time.Second):
		t.Fatal("no refresh event after a new order")
	}
}

func TestOrdersPollDetectsRowsSharingTheWatermarkTimestamp(t *testing.T) {
	now := time.Now()
	orders := &stubOrders{rows: []*model.Order{{ID: 1, CreatedAt: now}}}
	events := alert.NewBroadcaster()
	p := New(&stubNotifications{}, orders, dedup.New(dedup.NewMemoryStore(), nil),
		&recordingAlerter{}, events, nil, DefaultIntervals())

	ch, cancel := events.Subscribe()
	defer cancel()

	ctx := context.Background()
	require.NoError(t, p.pollOrders(ctx))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no refresh event for the first cycle")
	}

	// a second order committed with the exact same timestamp
	orders.mu.Lock()
	orders.rows = append([]*model.Order{{ID: 2, CreatedAt: now}}, orders.rows...)
	orders.mu.Unlock()

	require.NoError(t, p.pollOrders(ctx))
	select {
	case e := <-ch:
		assert.Equal(t, alert.EventDataRefreshed, e.Type)
	case <-time.After(time.Second):
		t.Fatal("order sharing the watermark timestamp was never reported")
	}
}

func TestPollFailureSurfacesToast(t *testing.T) {
	source := &stubNotifications{err: errors.New("db down")}
	events := alert.NewBroadcaster()
	p := New(source, &stubOrders{}, dedup.New(dedup.NewMemoryStore(), nil),
		&recordingAlerter{}, events, nil, DefaultIntervals())

	ch, cancel := events.Subscribe()
	defer cancel()

	p.runCycle(context.Background(), "unread_notifications", p.pollUnread)

	select {
	case e := <-ch:
		assert.Equal(t, alert.EventToast, e.Type)
	case <-time.After(time.Second):
		t.Fatal("no toast event after poll failure")
	}
}
