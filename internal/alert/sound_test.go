package alert

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbaweja699/PA-restaurant-sub001/internal/model"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages []SoundCommand
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	var cmd SoundCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		return err
	}
	f.messages = append(f.messages, cmd)
	return nil
}

func (f *fakePublisher) published() []SoundCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SoundCommand, len(f.messages))
	copy(out, f.messages)
	return out
}

func newTestDispatcher(pub *fakePublisher) *Dispatcher {
	d := NewDispatcher(pub, NewBroadcaster(), nil, "sound_commands", []string{"/sounds/alert.mp3"})
	d.probe = func(context.Context, string) bool { return true }
	return d
}

func TestPlayParksUntilInteraction(t *testing.T) {
	pub := &fakePublisher{}
	d := newTestDispatcher(pub)

	d.Play("a1", model.NotificationTypeBooking)

	assert.Equal(t, SoundRetryArmed, d.State())
	assert.Empty(t, pub.published())

	d.Interaction()

	msgs := pub.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, "a1", msgs[0].AlertID)
	assert.False(t, msgs[0].Loop)
	assert.Equal(t, SoundPlaying, d.State())
}

func TestInteractionFlushesAllParkedCommands(t *testing.T) {
	pub := &fakePublisher{}
	d := newTestDispatcher(pub)

	d.Play("a1", model.NotificationTypeBooking)
	d.Play("a2", model.NotificationTypeOrder)
	d.Interaction()

	msgs := pub.published()
	require.Len(t, msgs, 2)
	assert.Equal(t, "a1", msgs[0].AlertID)
	assert.Equal(t, "a2", msgs[1].AlertID)
}

func TestOrderAlertsLoopUntilStopped(t *testing.T) {
	pub := &fakePublisher{}
	d := newTestDispatcher(pub)

	d.Interaction()
	d.Play("a1", model.NotificationTypeOrder)

	msgs := pub.published()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Loop)

	d.Stop("a1")

	msgs = pub.published()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Stop)
	assert.Equal(t, "a1", msgs[1].AlertID)
}

func TestStopDiscardsParkedCommand(t *testing.T) {
	pub := &fakePublisher{}
	d := newTestDispatcher(pub)

	d.Play("a1", model.NotificationTypeOrder)
	d.Stop("a1")
	d.Interaction()

	// the cue was resolved before any gesture arrived; nothing to play
	assert.Empty(t, pub.published())
	assert.Equal(t, SoundBlocked, d.State())
}

func TestFallbackBannerWhenNoAssetReachable(t *testing.T) {
	pub := &fakePublisher{}
	events := NewBroadcaster()
	d := NewDispatcher(pub, events, nil, "sound_commands", []string{
		"https://example.com/a.mp3",
		"https://example.com/b.mp3",
	})
	d.probe = func(context.Context, string) bool { return false }

	ch, cancel := events.Subscribe()
	defer cancel()

	d.Interaction()
	d.Play("a1", model.NotificationTypeOrder)

	assert.Empty(t, pub.published())

	select {
	case e := <-ch:
		assert.Equal(t, EventSoundFallback, e.Type)
		assert.Len(t, e.SoundURLs, 2)
	case <-time.After(time.Second):
		t.Fatal("no fallback event published")
	}
}

func TestDeliveryFailureIsNonFatal(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	d := newTestDispatcher(pub)

	d.Interaction()
	d.Play("a1", model.NotificationTypeBooking)

	assert.Equal(t, SoundBlocked, d.State())
}

func TestAssetProbeStopsAtFirstReachable(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, NewBroadcaster(), nil, "sound_commands", []string{
		"https://example.com/missing.mp3",
		"https://example.com/present.mp3",
		"https://example.com/never-tried.mp3",
	})

	var probed []string
	d.probe = func(_ context.Context, url string) bool {
		probed = append(probed, url)
		return url == "https://example.com/present.mp3"
	}

	d.Interaction()
	d.Play("a1", model.NotificationTypeBooking)

	assert.Equal(t, []string{
		"https://example.com/missing.mp3",
		"https://example.com/present.mp3",
	}, probed)

	msgs := pub.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, "https://example.com/present.mp3", msgs[0].SoundURL)

	// second play reuses the cached asset without re-probing
	d.Play("a2", model.NotificationTypeBooking)
	assert.Len(t, probed, 2)
}
