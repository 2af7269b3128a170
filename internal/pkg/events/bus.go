// Package events fans document change notifications out to every open view.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultBuffer = 32

// Event announces that the document stored under Key was written or removed.
// It carries no value; receivers re-read the key.
type Event struct {
	Key     string    `json:"key"`
	Deleted bool      `json:"deleted,omitempty"`
	Origin  string    `json:"origin"`
	At      time.Time `json:"at"`
}

// Bus delivers events to subscribers filtered by key.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	origin string
	buffer int
	logger zerolog.Logger
}

// Subscription receives events on C until Unsubscribe is called.
type Subscription struct {
	C <-chan Event

	ch   chan Event
	keys map[string]struct{}
	bus  *Bus
	once sync.Once
}

// NewBus creates a bus with a fresh instance origin id.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		subs:   make(map[*Subscription]struct{}),
		origin: uuid.NewString(),
		buffer: defaultBuffer,
		logger: logger,
	}
}

// Origin identifies events published by this process.
func (b *Bus) Origin() string {
	return b.origin
}

// Subscribe registers interest in keys. No keys means every key.
func (b *Bus) Subscribe(keys ...string) *Subscription {
	ch := make(chan Event, b.buffer)
	sub := &Subscription{C: ch, ch: ch, bus: b}
	if len(keys) > 0 {
		sub.keys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			sub.keys[k] = struct{}{}
		}
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe stops delivery and closes C. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		close(s.ch)
		s.bus.mu.Unlock()
	})
}

func (s *Subscription) wants(key string) bool {
	if s.keys == nil {
		return true
	}
	_, ok := s.keys[key]
	return ok
}

// Publish delivers ev to every matching subscriber without blocking. A
// subscriber whose buffer is full misses the event.
func (b *Bus) Publish(ev Event) {
	if ev.Origin == "" {
		ev.Origin = b.origin
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if !sub.wants(ev.Key) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			b.logger.Warn().Str("key", ev.Key).Msg("Dropped change notification for slow subscriber")
		}
	}
}

// Changed is shorthand for publishing a local write of key.
func (b *Bus) Changed(key string) {
	b.Publish(Event{Key: key})
}

// Removed is shorthand for publishing a local removal of key.
func (b *Bus) Removed(key string) {
	b.Publish(Event{Key: key, Deleted: true})
}

// SubscriberCount reports the number of live subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
