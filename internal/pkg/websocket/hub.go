package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/qmc/portal/internal/pkg/events"
	"github.com/rs/zerolog"
)

// MessageTypeStorage is the only frame the hub sends. It tells a view that
// the named document changed and should be re-read.
const MessageTypeStorage = "storage"

// Hub maintains the set of open views and relays document changes to them
type Hub struct {
	// Registered clients
	clients map[*Client]struct{}

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	bus    *events.Bus
	logger zerolog.Logger
}

// Message represents a frame sent over WebSocket
type Message struct {
	Type    string `json:"type"`
	Key     string `json:"key"`
	Deleted bool   `json:"deleted,omitempty"`
}

// NewHub creates a new Hub fed by bus
func NewHub(bus *events.Bus, logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		bus:        bus,
		logger:     logger,
	}
}

// Run relays bus events to clients until ctx is cancelled
func (h *Hub) Run(ctx context.Context) error {
	sub := h.bus.Subscribe()
	defer func() {
		sub.Unsubscribe()
		close(h.done)
		h.closeAll()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ev, ok := <-sub.C:
			if !ok {
				return nil
			}
			h.broadcast(ev)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = struct{}{}
	h.logger.Info().
		Strs("keys", client.keyList()).
		Str("addr", client.remoteAddr()).
		Msg("View registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info().
			Str("addr", client.remoteAddr()).
			Msg("View unregistered")
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

// broadcast sends ev to every client watching its key
func (h *Hub) broadcast(ev events.Event) {
	data, err := json.Marshal(Message{Type: MessageTypeStorage, Key: ev.Key, Deleted: ev.Deleted})
	if err != nil {
		h.logger.Error().Err(err).Str("key", ev.Key).Msg("Failed to marshal storage message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for client := range h.clients {
		if !client.wants(ev.Key) {
			continue
		}
		select {
		case client.send <- data:
			sent++
		default:
			// Slow or gone; drop the view, it reconnects and re-reads everything
			delete(h.clients, client)
			close(client.send)
		}
	}

	h.logger.Debug().
		Str("key", ev.Key).
		Int("clientCount", sent).
		Msg("Storage change relayed")
}

// ClientCount returns the number of connected views
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) enqueueRegister(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) enqueueUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
