// Package poller drives the notification pipeline: independent tickers per
// data source feed fresh rows through the deduplicator into the alert queue.
package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/alert"
	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
)

// NotificationSource lists notification rows
type NotificationSource interface {
	List(ctx context.Context, limit int) ([]*model.Notification, error)
	ListUnread(ctx context.Context) ([]*model.Notification, error)
}

// OrderSource lists order rows created after a (time, id) watermark
type OrderSource interface {
	ListSince(ctx context.Context, since time.Time, afterID int64) ([]*model.Order, error)
}

// Deduper decides whether a notification id may alert
type Deduper interface {
	ShouldAlert(ctx context.Context, id int64) bool
}

// Alerter queues a user-visible alert
type Alerter interface {
	Enqueue(n model.Notification) alert.Alert
}

// Intervals holds the per-source polling periods. The sources are not
// coordinated; cycles from different sources interleave arbitrarily.
type Intervals struct {
	Notifications time.Duration
	Unread        time.Duration
	Orders        time.Duration
}

// DefaultIntervals mirrors the dashboard's historical polling cadence
func DefaultIntervals() Intervals {
	return Intervals{
		Notifications: 8 * time.Second,
		Unread:        10 * time.Second,
		Orders:        30 * time.Second,
	}
}

// cycleTimeout bounds one poll cycle so a stuck query cannot stack requests
const cycleTimeout = 15 * time.Second

// Poller polls the data sources and feeds the alert pipeline
type Poller struct {
	notifications NotificationSource
	orders        OrderSource
	dedup         Deduper
	alerts        Alerter
	events        *alert.Broadcaster
	log           *zap.Logger
	intervals     Intervals

	// high-water mark for the orders poll; touched only by the orders loop.
	// The id breaks ties between rows sharing a commit timestamp.
	lastOrderSeen time.Time
	lastOrderID   int64
}

// New creates a poller
func New(notifications NotificationSource, orders OrderSource, dedup Deduper, alerts Alerter, events *alert.Broadcaster, log *zap.Logger, intervals Intervals) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		notifications: notifications,
		orders:        orders,
		dedup:         dedup,
		alerts:        alerts,
		events:        events,
		log:           log,
		intervals:     intervals,
	}
}

// Run starts one loop per source and blocks until ctx is cancelled. Each
// loop is sequential: a source never has two cycles in flight at once.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup

	p.loop(ctx, &wg, "unread_notifications", p.intervals.Unread, p.pollUnread)
	p.loop(ctx, &wg, "notifications", p.intervals.Notifications, p.pollNotifications)
	p.loop(ctx, &wg, "orders", p.intervals.Orders, p.pollOrders)

	wg.Wait()
}

func (p *Poller) loop(ctx context.Context, wg *sync.WaitGroup, source string, interval time.Duration, cycle func(ctx context.Context) error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		p.runCycle(ctx, source, cycle)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.runCycle(ctx, source, cycle)
			}
		}
	}()
}

// runCycle executes one poll with a bounded deadline. Failures are logged
// and surfaced as a toast; the next tick simply tries again.
func (p *Poller) runCycle(ctx context.Context, source string, cycle func(ctx context.Context) error) {
	cctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	if err := cycle(cctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn("poll cycle failed", zap.String("source", source), zap.Error(err))
		p.events.Publish(alert.Event{
			Type:    alert.EventToast,
			Message: "Failed to refresh " + source,
		})
	}
}

// pollUnread is the alerting source: every unread notification that has not
// alerted before is queued, oldest first so alerts present in event order.
func (p *Poller) pollUnread(ctx context.Context) error {
	notifications, err := p.notifications.ListUnread(ctx)
	if err != nil {
		return err
	}

	for i := len(notifications) - 1; i >= 0; i-- {
		n := notifications[i]
		if !p.dedup.ShouldAlert(ctx, n.ID) {
			continue
		}
		p.log.Info("new notification alert",
			zap.Int64("notification_id", n.ID),
			zap.String("type", string(n.Type)))
		p.alerts.Enqueue(*n)
	}
	return nil
}

func (p *Poller) pollNotifications(ctx context.Context) error {
	if _, err := p.notifications.List(ctx, 100); err != nil {
		return err
	}
	p.events.Publish(alert.Event{Type: alert.EventDataRefreshed, Message: "notifications"})
	return nil
}

// pollOrders watches for newly created orders and tells connected dashboards
// to refresh. The first cycle sees everything; later cycles only the delta.
func (p *Poller) pollOrders(ctx context.Context) error {
	orders, err := p.orders.ListSince(ctx, p.lastOrderSeen, p.lastOrderID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	// rows come back newest first
	p.lastOrderSeen = orders[0].CreatedAt
	p.lastOrderID = orders[0].ID
	p.log.Info("new orders since last poll", zap.Int("count", len(orders)))
	p.events.Publish(alert.Event{Type: alert.EventDataRefreshed, Message: "orders"})
	return nil
}
