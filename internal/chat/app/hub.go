package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"band_booking_service/internal/chat/domain"
	"band_booking_service/pkg/database"
	"band_booking_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

// presenceTTL bounds how long a stale presence entry outlives a crashed
// instance.
const presenceTTL = 5 * time.Minute

// Conn is the write side of a live connection. *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
}

// Pusher delivers a payload to a connected participant, best effort.
type Pusher interface {
	Push(participantID string, resp domain.WSResponse) bool
}

// Hub maps participant ids to their live connection. The map is process
// local: it is mutated on join/disconnect only and is not shared across
// instances. Register optionally mirrors an entry into the Redis presence
// registry so a scaled deployment can see which instance holds a participant;
// delivery decisions use only the local map.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn

	registry database.RedisRepository[string]
	instance string
}

// NewHub create a Hub. registry may be nil when no presence mirror is wanted.
func NewHub(registry database.RedisRepository[string], instance string) *Hub {
	return &Hub{
		conns:    make(map[string]Conn),
		registry: registry,
		instance: instance,
	}
}

// Register binds participantID to conn, overwriting any previous entry.
func (h *Hub) Register(ctx context.Context, participantID string, conn Conn) {
	h.mu.Lock()
	h.conns[participantID] = conn
	h.mu.Unlock()

	if h.registry != nil {
		if err := h.registry.Set(ctx, presenceKey(participantID), h.instance, presenceTTL); err != nil {
			logger.Log.Errorf("presence register failed:", err)
		}
	}
}

// Unregister removes every entry bound to conn. Linear scan, the map holds
// one entry per connected participant.
func (h *Hub) Unregister(ctx context.Context, conn Conn) {
	var removed []string

	h.mu.Lock()
	for id, c := range h.conns {
		if c == conn {
			delete(h.conns, id)
			removed = append(removed, id)
		}
	}
	h.mu.Unlock()

	if h.registry == nil {
		return
	}
	for _, id := range removed {
		if err := h.registry.Del(ctx, presenceKey(id)); err != nil {
			logger.Log.Errorf("presence unregister failed:", err)
		}
	}
}

// Push writes resp to the participant's connection if one is registered.
// Returns false when the participant is not connected; the message stays
// durable in the store either way.
func (h *Hub) Push(participantID string, resp domain.WSResponse) bool {
	h.mu.RLock()
	conn, ok := h.conns[participantID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	b, _ := json.Marshal(resp)
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("push to participant failed:", err)
		return false
	}
	return true
}

// IsConnected reports whether participantID has a registered connection.
func (h *Hub) IsConnected(participantID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[participantID]
	return ok
}

func presenceKey(participantID string) string {
	return "presence:" + participantID
}
