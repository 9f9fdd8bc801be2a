package domain

// DefaultColor is used for segments that arrive without a color.
const DefaultColor = "#000000"

// DrawSegment is one straight-line stroke on the shared canvas. A segment is
// self-contained: applying it needs no prior history. The JSON field names are
// the frozen wire contract; prevX/prevY are the segment start, x/y the end.
type DrawSegment struct {
	PrevX float64 `json:"prevX"`
	PrevY float64 `json:"prevY"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// Connection is one live participant as seen by the relay.
type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Broadcaster tracks participants and fans payloads out to them.
type Broadcaster interface {
	Register(conn Connection)
	Unregister(conn Connection)
	Broadcast(sender Connection, data []byte)
	Count() int
}

// SegmentHandler processes one inbound message from a participant.
type SegmentHandler interface {
	Handle(conn Connection, data []byte)
}
