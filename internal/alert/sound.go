package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
)

// SoundState is the shared playback gate. Browsers refuse audio before a
// user gesture, so commands park until the dashboard reports an interaction.
type SoundState string

const (
	// SoundBlocked means nothing is queued and playback is not yet allowed
	SoundBlocked SoundState = "blocked"

	// SoundRetryArmed means commands are parked awaiting the next interaction
	SoundRetryArmed SoundState = "retry_armed"

	// SoundPlaying means the last command was delivered to the relay
	SoundPlaying SoundState = "playing"
)

// Publisher delivers sound commands to the dashboard relay queue
type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// SoundCommand is the JSON payload consumed by the dashboard sound relay
type SoundCommand struct {
	AlertID  string `json:"alert_id"`
	SoundURL string `json:"sound_url,omitempty"`
	Loop     bool   `json:"loop,omitempty"`
	Stop     bool   `json:"stop,omitempty"`
}

// Dispatcher plays a best-effort audio cue per alert. Order alerts loop
// until resolved; everything else plays once. Total failure only costs the
// sound, never the alert.
type Dispatcher struct {
	mu         sync.Mutex
	state      SoundState
	interacted bool
	pending    []SoundCommand
	assetURL   string

	candidates []string
	probe      func(ctx context.Context, url string) bool
	publisher  Publisher
	events     *Broadcaster
	log        *zap.Logger
	queueName  string
}

// NewDispatcher creates a sound dispatcher publishing to queueName. The
// candidate URLs are probed in priority order the first time a sound is
// needed; the first reachable one is cached.
func NewDispatcher(publisher Publisher, events *Broadcaster, log *zap.Logger, queueName string, candidates []string) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		state:      SoundBlocked,
		candidates: candidates,
		publisher:  publisher,
		events:     events,
		log:        log,
		queueName:  queueName,
	}
	d.probe = d.httpProbe
	return d
}

// State returns the current playback state
func (d *Dispatcher) State() SoundState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Play requests an audio cue for the alert. Before the first reported
// interaction the command is parked and the retry armed; there is one shared
// gate, not a listener per alert.
func (d *Dispatcher) Play(alertID string, typ model.NotificationType) {
	url, ok := d.resolveAsset()
	if !ok {
		// fallback UI: let the dashboard offer a manual play button
		d.events.Publish(Event{
			Type:      EventSoundFallback,
			Message:   "Notification sound unavailable",
			SoundURLs: d.candidates,
		})
		return
	}

	cmd := SoundCommand{
		AlertID:  alertID,
		SoundURL: url,
		Loop:     typ == model.NotificationTypeOrder,
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.interacted {
		d.pending = append(d.pending, cmd)
		d.state = SoundRetryArmed
		return
	}

	d.deliverLocked(cmd)
}

// Stop ends a looping cue once its alert resolves. A command still parked is
// simply discarded.
func (d *Dispatcher) Stop(alertID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.pending[:0]
	dropped := false
	for _, cmd := range d.pending {
		if cmd.AlertID == alertID {
			dropped = true
			continue
		}
		kept = append(kept, cmd)
	}
	d.pending = kept
	if dropped && len(d.pending) == 0 && d.state == SoundRetryArmed {
		d.state = SoundBlocked
	}
	if dropped || !d.interacted {
		return
	}

	d.deliverLocked(SoundCommand{AlertID: alertID, Stop: true})
}

// Interaction records a user gesture from the dashboard and flushes every
// parked command once. Commands that still fail are dropped, not re-armed.
func (d *Dispatcher) Interaction() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.interacted = true

	pending := d.pending
	d.pending = nil
	if len(pending) == 0 {
		return
	}

	for _, cmd := range pending {
		d.deliverLocked(cmd)
	}
}

func (d *Dispatcher) deliverLocked(cmd SoundCommand) {
	body, err := json.Marshal(cmd)
	if err != nil {
		d.log.Error("failed to encode sound command", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.publisher.Publish(ctx, d.queueName, body); err != nil {
		d.log.Warn("failed to deliver sound command",
			zap.String("alert_id", cmd.AlertID), zap.Error(err))
		d.state = SoundBlocked
		return
	}
	d.state = SoundPlaying
}

// resolveAsset probes the candidate URLs in priority order and caches the
// first reachable one.
func (d *Dispatcher) resolveAsset() (string, bool) {
	d.mu.Lock()
	if d.assetURL != "" {
		url := d.assetURL
		d.mu.Unlock()
		return url, true
	}
	candidates := d.candidates
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for _, url := range candidates {
		if d.probe(ctx, url) {
			d.mu.Lock()
			d.assetURL = url
			d.mu.Unlock()
			return url, true
		}
	}
	return "", false
}

func (d *Dispatcher) httpProbe(ctx context.Context, url string) bool {
	// relative paths are resolved by the dashboard itself, not probeable here
	if len(url) == 0 {
		return false
	}
	if url[0] == '/' {
		return true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}
