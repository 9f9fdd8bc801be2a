package hub

import (
	"log/slog"
	"sync"

	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/domain"
)

// Hub tracks the participants of the single shared canvas and fans each
// inbound payload out to everyone except its sender. It keeps no drawing
// history: late joiners see only future segments.
type Hub struct {
	participants map[string]domain.Connection
	mu           sync.RWMutex
}

func New() *Hub {
	return &Hub{
		participants: make(map[string]domain.Connection),
	}
}

func (h *Hub) Register(conn domain.Connection) {
	h.mu.Lock()
	h.participants[conn.ID()] = conn
	count := len(h.participants)
	h.mu.Unlock()

	slog.Info("participant connected", "participantId", conn.ID(), "participants", count)
}

func (h *Hub) Unregister(conn domain.Connection) {
	h.mu.Lock()
	_, exists := h.participants[conn.ID()]
	if exists {
		delete(h.participants, conn.ID())
	}
	count := len(h.participants)
	h.mu.Unlock()

	if exists {
		slog.Info("participant disconnected", "participantId", conn.ID(), "participants", count)
	}
}

// Broadcast delivers data to every participant except the sender. A failed
// delivery drops only that recipient: it is unregistered and the loop
// continues with the rest.
func (h *Hub) Broadcast(sender domain.Connection, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, conn := range h.participants {
		if id == sender.ID() {
			continue
		}
		if err := conn.Send(data); err != nil {
			slog.Warn("delivery failed", "participantId", id, "error", err)
			go func(c domain.Connection) {
				h.Unregister(c)
				c.Close()
			}(conn)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.participants)
}
