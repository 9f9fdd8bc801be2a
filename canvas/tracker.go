// Package canvas turns raw pointer motion into draw segments and routes every
// segment, local or remote, onto the rendering surface.
package canvas

import (
	"sync"

	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/domain"
)

// Renderer is the drawing surface collaborator. It has no synchronization
// responsibility; calls are assumed synchronous and side-effect-only.
type Renderer interface {
	DrawLine(fromX, fromY, toX, toY float64, color string)
	Clear()
}

// Sender transmits one locally produced segment. *client.Manager satisfies it.
type Sender interface {
	Send(seg domain.DrawSegment) error
}

// Tracker is the local draw tracker. Locally produced segments are echoed to
// the Renderer immediately and handed to the Sender; remotely received
// segments enter only through ApplyRemote, which never transmits. Keeping the
// two paths as separate methods is what rules out rebroadcast loops.
type Tracker struct {
	renderer Renderer
	sender   Sender

	mu     sync.Mutex
	active bool
	lastX  float64
	lastY  float64
	color  string
}

func NewTracker(r Renderer, s Sender) *Tracker {
	return &Tracker{
		renderer: r,
		sender:   s,
		color:    domain.DefaultColor,
	}
}

// SetColor selects the color for subsequent local segments.
func (t *Tracker) SetColor(color string) {
	t.mu.Lock()
	if color == "" {
		color = domain.DefaultColor
	}
	t.color = color
	t.mu.Unlock()
}

// PointerDown begins a stroke. It only seeds the last pointer position; no
// segment is emitted until the first move.
func (t *Tracker) PointerDown(x, y float64) {
	t.mu.Lock()
	t.active = true
	t.lastX, t.lastY = x, y
	t.mu.Unlock()
}

// PointerMove emits one segment from the last pointer position to (x, y)
// while a stroke is active, then advances the last position.
func (t *Tracker) PointerMove(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	seg := domain.DrawSegment{
		PrevX: t.lastX,
		PrevY: t.lastY,
		X:     x,
		Y:     y,
		Color: t.color,
	}
	t.renderer.DrawLine(seg.PrevX, seg.PrevY, seg.X, seg.Y, seg.Color)
	t.sender.Send(seg)
	t.lastX, t.lastY = x, y
}

// PointerUp ends the active stroke.
func (t *Tracker) PointerUp() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// PointerLeave ends the active stroke when the pointer leaves the canvas.
func (t *Tracker) PointerLeave() {
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

// ApplyRemote renders a segment received from the relay. It must never feed
// the segment back into the Sender.
func (t *Tracker) ApplyRemote(seg domain.DrawSegment) {
	color := seg.Color
	if color == "" {
		color = domain.DefaultColor
	}

	t.mu.Lock()
	t.renderer.DrawLine(seg.PrevX, seg.PrevY, seg.X, seg.Y, color)
	t.mu.Unlock()
}

// Clear wipes the local surface only. Other participants' canvases are not
// cleared; there is no clear message on the wire.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.renderer.Clear()
	t.mu.Unlock()
}
