// Package feed pushes emitted registry events to WebSocket subscribers.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/events"
	"tzar-nft-registry/internal/observability"
)

// Hub broadcasts every emitted event to all connected WebSocket clients.
// It implements events.Sink so it can sit in the registry's sink fanout.
// Subscribers are fire-and-forget: a failed write drops the client, it never
// fails the operation that emitted the event.
type Hub struct {
	mu      sync.Mutex
	conns   map[*websocket.Conn]bool
	closed  bool
	metrics *observability.Metrics
	logger  *log.Logger

	upgrader websocket.Upgrader
}

var _ events.Sink = (*Hub)(nil)

// NewHub creates a Hub. metrics and logger may be nil.
func NewHub(metrics *observability.Metrics, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(log.Writer(), "[feed] ", log.LstdFlags)
	}
	return &Hub{
		conns:   make(map[*websocket.Conn]bool),
		metrics: metrics,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP upgrades the request to a WebSocket connection and registers it
// for event delivery. The read loop exists only to detect disconnects; client
// messages are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.conns[conn] = true
	n := len(h.conns)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.FeedClients.Set(float64(n))
	}
	h.logger.Printf("feed client connected (%d active)", n)

	go h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Emit marshals the event as JSON and writes it to every connected client.
// Clients whose write fails are dropped. Emit never returns an error for
// per-client failures.
func (h *Hub) Emit(ctx context.Context, e *domain.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	h.mu.Lock()
	targets := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		targets = append(targets, conn)
	}
	h.mu.Unlock()

	for _, conn := range targets {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			if h.metrics != nil {
				h.metrics.FeedSendErrors.Inc()
			}
			h.drop(conn)
			continue
		}
		if h.metrics != nil {
			h.metrics.FeedMessagesSent.Inc()
		}
	}
	return nil
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects all clients and stops accepting new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[*websocket.Conn]bool)
	h.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
	if h.metrics != nil {
		h.metrics.FeedClients.Set(0)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	if ok {
		delete(h.conns, conn)
	}
	n := len(h.conns)
	h.mu.Unlock()

	if !ok {
		return
	}
	conn.Close()
	if h.metrics != nil {
		h.metrics.FeedClients.Set(float64(n))
	}
	h.logger.Printf("feed client disconnected (%d active)", n)
}
