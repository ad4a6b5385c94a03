package notifications

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"loomline/internal/observability"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	// Max connections per profile.
	maxConnsPerProfile = 12
	// Max total connections.
	maxTotalConns = 10000
)

// Hub is a websocket hub that maps profileID -> set of Clients.
type Hub struct {
	mu           sync.RWMutex
	conns        map[uuid.UUID]map[*Client]struct{}
	totalConns   int
	shutdown     chan struct{}
	done         chan struct{}
	shutdownOnce sync.Once
}

// NewHub creates a new Hub instance for managing notification streams.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[uuid.UUID]map[*Client]struct{}),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Register a connection for a given profileID. Returns the Client or an error
// if limits are exceeded.
func (h *Hub) Register(profileID uuid.UUID, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[profileID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[profileID] = m
	}

	if len(m) >= maxConnsPerProfile {
		return nil, errors.New("profile connection limit reached")
	}

	client := NewClient(h, conn, profileID)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnections.Inc()

	return client, nil
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if m, ok := h.conns[client.ProfileID]; ok {
		if _, exists := m[client]; exists {
			delete(m, client)
			h.totalConns--
			observability.WebSocketConnections.Dec()
		}
		if len(m) == 0 {
			delete(h.conns, client.ProfileID)
		}
	}
}

// Broadcast sends message to all connections for profileID.
func (h *Hub) Broadcast(profileID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[profileID]; ok {
		for c := range clients {
			c.TrySend(message)
		}
	}
}

// BroadcastAll sends message to every connected websocket client.
func (h *Hub) BroadcastAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.conns {
		for c := range clients {
			c.TrySend(message)
		}
	}
}

// IsOnline reports whether a profile currently has at least one active
// websocket connection.
func (h *Hub) IsOnline(profileID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients, ok := h.conns[profileID]
	return ok && len(clients) > 0
}

// StartWiring connects the RedisSink to this hub: it subscribes to the Redis
// pattern and forwards messages to matching profile connections.
func (h *Hub) StartWiring(ctx context.Context, sink *RedisSink) error {
	return sink.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == broadcastChannel {
			h.BroadcastAll([]byte(payload))
			return
		}
		raw, ok := strings.CutPrefix(channel, userChannelPrefix)
		if !ok {
			log.Printf("invalid notification channel: %s", channel)
			return
		}
		profileID, err := uuid.Parse(raw)
		if err != nil {
			log.Printf("invalid notification channel: %s", channel)
			return
		}
		h.Broadcast(profileID, []byte(payload))
	})
}

// Shutdown gracefully closes all websocket connections. Safe to call more
// than once; later calls are no-ops.
func (h *Hub) Shutdown(_ context.Context) error {
	h.shutdownOnce.Do(func() {
		close(h.shutdown)

		h.mu.Lock()
		for profileID, clients := range h.conns {
			for client := range clients {
				if client.Conn == nil {
					continue
				}
				if err := client.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
					log.Printf("failed to write close message for profile %s: %v", profileID, err)
				}
				if err := client.Conn.Close(); err != nil {
					log.Printf("failed to close websocket for profile %s: %v", profileID, err)
				}
			}
		}
		observability.WebSocketConnections.Sub(float64(h.totalConns))
		h.conns = make(map[uuid.UUID]map[*Client]struct{})
		h.totalConns = 0
		h.mu.Unlock()

		close(h.done)
	})

	return nil
}
