package protocol

import (
	"log/slog"

	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/domain"
)

// Handler is the relay-side message handler: it validates each inbound
// payload and fans the original bytes out unchanged, so receivers get
// exactly what the sender produced.
type Handler struct {
	broadcaster domain.Broadcaster
}

func NewHandler(b domain.Broadcaster) *Handler {
	return &Handler{broadcaster: b}
}

func (h *Handler) Handle(conn domain.Connection, data []byte) {
	if _, err := Decode(data); err != nil {
		slog.Warn("dropping malformed segment", "participantId", conn.ID(), "error", err)
		return
	}
	h.broadcaster.Broadcast(conn, data)
}
