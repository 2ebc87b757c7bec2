// Package alert presents notification alerts to the dashboard: an explicit
// FIFO queue with a single active slot, per-alert state machines, and the
// best-effort sound dispatcher.
package alert

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
)

// State represents the lifecycle of one alert instance.
// idle -> shown -> {accepted | dismissed | auto_closed}, terminal.
type State string

const (
	StateIdle       State = "idle"
	StateShown      State = "shown"
	StateAccepted   State = "accepted"
	StateDismissed  State = "dismissed"
	StateAutoClosed State = "auto_closed"
)

// DefaultAutoClose is how long a non-order alert stays up before closing itself
const DefaultAutoClose = 6 * time.Second

var (
	ErrAlertNotFound  = errors.New("alert not found")
	ErrAlertNotActive = errors.New("alert is not active")
)

// Alert is one queued or active alert instance
type Alert struct {
	ID           string             `json:"id"`
	Notification model.Notification `json:"notification"`
	State        State              `json:"state"`
	ShownAt      *time.Time         `json:"shown_at,omitempty"`
}

// OrderTransitioner applies order status transitions triggered from an alert
type OrderTransitioner interface {
	SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

// SoundPlayer is the surface of the sound dispatcher the presenter needs
type SoundPlayer interface {
	Play(alertID string, typ model.NotificationType)
	Stop(alertID string)
}

// Presenter owns the alert queue. At most one alert is shown at a time;
// the rest wait in arrival order instead of being silently replaced.
type Presenter struct {
	mu     sync.Mutex
	active *Alert
	queue  []*Alert
	timer  *time.Timer

	orders    OrderTransitioner
	sound     SoundPlayer
	events    *Broadcaster
	log       *zap.Logger
	autoClose time.Duration
}

// NewPresenter creates a presenter. autoClose <= 0 selects the default.
func NewPresenter(orders OrderTransitioner, sound SoundPlayer, events *Broadcaster, log *zap.Logger, autoClose time.Duration) *Presenter {
	if log == nil {
		log = zap.NewNop()
	}
	if autoClose <= 0 {
		autoClose = DefaultAutoClose
	}
	return &Presenter{
		orders:    orders,
		sound:     sound,
		events:    events,
		log:       log,
		autoClose: autoClose,
	}
}

// soundOp is a dispatcher call collected under p.mu and executed after it is
// released: broker publishes and asset probes must never stall the queue.
type soundOp struct {
	stop bool
	id   string
	typ  model.NotificationType
}

func (p *Presenter) runSoundOps(ops []soundOp) {
	for _, op := range ops {
		if op.stop {
			p.sound.Stop(op.id)
		} else {
			p.sound.Play(op.id, op.typ)
		}
	}
}

// Enqueue adds an alert for the notification and shows it immediately when
// nothing else is active. The returned Alert is a snapshot; later state
// changes are reported through the event stream.
func (p *Presenter) Enqueue(n model.Notification) Alert {
	p.mu.Lock()

	a := &Alert{
		ID:           uuid.New().String(),
		Notification: n,
		State:        StateIdle,
	}
	p.queue = append(p.queue, a)

	var ops []soundOp
	if p.active == nil {
		ops = p.promoteLocked()
	}
	snapshot := *a
	p.mu.Unlock()

	p.runSoundOps(ops)
	return snapshot
}

// Active returns a snapshot of the currently shown alert
func (p *Presenter) Active() (Alert, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return Alert{}, false
	}
	return *p.active, true
}

// QueuedCount returns how many alerts are waiting behind the active one
func (p *Presenter) QueuedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Accept resolves the active alert as accepted. For order alerts it issues
// exactly one status transition to "processing"; the call is fire-and-forget
// and a failure surfaces as a toast, never a retry.
func (p *Presenter) Accept(ctx context.Context, alertID string) error {
	return p.resolve(ctx, alertID, StateAccepted)
}

// Dismiss resolves the active alert as dismissed. For order alerts it resets
// the order status to "new"; other alert types do not touch server state.
func (p *Presenter) Dismiss(ctx context.Context, alertID string) error {
	return p.resolve(ctx, alertID, StateDismissed)
}

func (p *Presenter) resolve(ctx context.Context, alertID string, terminal State) error {
	p.mu.Lock()

	if p.active == nil || p.active.ID != alertID {
		queued := p.queuedLocked(alertID)
		p.mu.Unlock()
		if queued {
			return ErrAlertNotActive
		}
		return ErrAlertNotFound
	}

	notification := p.active.Notification
	ops := p.finishLocked(p.active, terminal)
	p.mu.Unlock()

	p.runSoundOps(ops)

	if notification.Type == model.NotificationTypeOrder {
		p.transitionOrder(ctx, alertID, notification, terminal)
	}
	return nil
}

func (p *Presenter) queuedLocked(alertID string) bool {
	for _, a := range p.queue {
		if a.ID == alertID {
			return true
		}
	}
	return false
}

// transitionOrder issues the single status update an accept or dismiss maps to
func (p *Presenter) transitionOrder(ctx context.Context, alertID string, n model.Notification, terminal State) {
	orderID, ok := n.OrderID()
	if !ok {
		p.log.Warn("order alert without order_id detail", zap.String("alert_id", alertID))
		return
	}

	status := model.OrderStatusProcessing
	if terminal == StateDismissed {
		status = model.OrderStatusNew
	}

	if err := p.orders.SetStatus(ctx, orderID, status); err != nil {
		p.log.Error("order status transition failed",
			zap.Int64("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err))
		p.events.Publish(Event{
			Type:    EventToast,
			Message: "Failed to update order status",
		})
	}
}

// finishLocked moves the active alert to a terminal state, shows the next
// and returns the sound calls the caller must run after releasing p.mu.
// Events carry snapshot copies so subscribers never read the live struct.
func (p *Presenter) finishLocked(a *Alert, terminal State) []soundOp {
	a.State = terminal
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	snapshot := *a
	p.events.Publish(Event{Type: EventAlertResolved, Alert: &snapshot})

	ops := []soundOp{{stop: true, id: a.ID}}

	p.active = nil
	return append(ops, p.promoteLocked()...)
}

// promoteLocked shows the head of the queue and, for anything but an order,
// arms the auto-close timer. Order alerts stay up until someone decides.
func (p *Presenter) promoteLocked() []soundOp {
	if len(p.queue) == 0 {
		return nil
	}

	a := p.queue[0]
	p.queue = p.queue[1:]

	now := time.Now()
	a.State = StateShown
	a.ShownAt = &now
	p.active = a

	snapshot := *a
	p.events.Publish(Event{Type: EventAlertShown, Alert: &snapshot})

	if a.Notification.Type != model.NotificationTypeOrder {
		id := a.ID
		p.timer = time.AfterFunc(p.autoClose, func() { p.autoCloseAlert(id) })
	}
	return []soundOp{{id: a.ID, typ: a.Notification.Type}}
}

func (p *Presenter) autoCloseAlert(alertID string) {
	p.mu.Lock()

	if p.active == nil || p.active.ID != alertID || p.active.State != StateShown {
		p.mu.Unlock()
		return
	}
	ops := p.finishLocked(p.active, StateAutoClosed)
	p.mu.Unlock()

	p.runSoundOps(ops)
}
