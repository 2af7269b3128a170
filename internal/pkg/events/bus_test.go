package events

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev := <-sub.C:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func assertSilent(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case ev := <-sub.C:
		t.Fatalf("unexpected event for %s", ev.Key)
	default:
	}
}

func TestBus_FiltersByKey(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	cfg := bus.Subscribe("qmc_site_config")
	all := bus.Subscribe()
	defer cfg.Unsubscribe()
	defer all.Unsubscribe()

	bus.Changed("qmc_staff_data")
	bus.Changed("qmc_site_config")

	ev := receive(t, cfg)
	assert.Equal(t, "qmc_site_config", ev.Key)
	assert.Equal(t, bus.Origin(), ev.Origin)
	assert.False(t, ev.At.IsZero())
	assertSilent(t, cfg)

	assert.Equal(t, "qmc_staff_data", receive(t, all).Key)
	assert.Equal(t, "qmc_site_config", receive(t, all).Key)
	assertSilent(t, all)
}

func TestBus_RemovedFlag(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe("qmc_audit_logs")
	defer sub.Unsubscribe()

	bus.Removed("qmc_audit_logs")
	assert.True(t, receive(t, sub).Deleted)
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe()
	defer sub.Unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultBuffer*3; i++ {
			bus.Changed("k")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, sub.C, defaultBuffer)
}

func TestSubscription_UnsubscribeTwice(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	sub := bus.Subscribe()
	require.Equal(t, 1, bus.SubscriberCount())

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, bus.SubscriberCount())

	_, open := <-sub.C
	assert.False(t, open)
	bus.Changed("k")
}

func TestNotificationPayload(t *testing.T) {
	payload, err := encodeNotification(Event{Key: "qmc_staff_data", Origin: "a"})
	require.NoError(t, err)

	ev, ok := decodeNotification(payload, "b")
	require.True(t, ok)
	assert.Equal(t, "qmc_staff_data", ev.Key)
	assert.Equal(t, "a", ev.Origin)

	_, ok = decodeNotification(payload, "a")
	assert.False(t, ok, "own notifications are ignored")

	_, ok = decodeNotification("not json", "b")
	assert.False(t, ok)
}
