package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"hr-interviews-go/internal/domain/events"
	"hr-interviews-go/pkg/logger"
)

// Hub fans change events out to every connected browser so clients can drop
// stale cache entries without polling.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	log        logger.Logger

	// done is closed when Run exits. lifecycle guards stopped so no sender
	// can enqueue after the final drain.
	done      chan struct{}
	lifecycle sync.RWMutex
	stopped   bool
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		log:        log,
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes every
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stop()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("ws: client connected", "total_clients", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("ws: client disconnected", "total_clients", total)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than block every other client.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) stop() {
	close(h.done)
	h.lifecycle.Lock()
	h.stopped = true
	h.lifecycle.Unlock()

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	for {
		select {
		case client := <-h.register:
			close(client.send)
		case <-h.unregister:
		default:
			return
		}
	}
}

// Register reports false once the hub has stopped; the caller owns the
// connection then.
func (h *Hub) Register(client *Client) bool {
	h.lifecycle.RLock()
	defer h.lifecycle.RUnlock()
	if h.stopped {
		return false
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	h.lifecycle.RLock()
	defer h.lifecycle.RUnlock()
	if h.stopped {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(message []byte) bool {
	select {
	case h.broadcast <- message:
		return true
	default:
		h.log.Warn("ws: broadcast dropped", "reason", "buffer_full")
		return false
	}
}

func (h *Hub) Publish(_ context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	h.Broadcast(payload)
	return nil
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
