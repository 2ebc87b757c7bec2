package alert

import (
	"sync"
)

// EventType defines the kind of event pushed to dashboard subscribers
type EventType string

const (
	// EventAlertShown fires when an alert becomes the active one
	EventAlertShown EventType = "alert_shown"

	// EventAlertResolved fires when the active alert reaches a terminal state
	EventAlertResolved EventType = "alert_resolved"

	// EventToast carries a non-blocking error or info message
	EventToast EventType = "toast"

	// EventSoundFallback tells the dashboard to render the clickable
	// play-sound banner because no audio asset was reachable
	EventSoundFallback EventType = "sound_fallback"

	// EventDataRefreshed tells the dashboard a polled data source changed;
	// Message names the source
	EventDataRefreshed EventType = "data_refreshed"
)

// Event is pushed to every connected dashboard client over the SSE stream
type Event struct {
	Type      EventType `json:"type"`
	Alert     *Alert    `json:"alert,omitempty"`
	Message   string    `json:"message,omitempty"`
	SoundURLs []string  `json:"sound_urls,omitempty"`
}

// Broadcaster fans events out to SSE subscribers. Slow subscribers drop
// events instead of blocking the alert pipeline.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber and returns its channel plus a cancel
// function that must be called when the client disconnects.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking
func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			// subscriber is not keeping up, drop
		}
	}
}
