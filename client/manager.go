// Package client implements the drawing client's connection manager: one
// logical connection to the relay that dials, reconnects at a fixed interval,
// and exposes send/receive for draw segments.
package client

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/domain"
	"github.com/krisp619/AI-Assisted-collaborative-Diagramming-Tool/protocol"
)

// Status is the manager's connection state.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

const (
	defaultRetryDelay  = 3 * time.Second
	defaultDialTimeout = 5 * time.Second
)

// Options configures a Manager. URL is required, e.g. "ws://host:8000/ws/draw".
type Options struct {
	URL         string
	RetryDelay  time.Duration // fixed reconnect interval, no growth
	DialTimeout time.Duration
}

// Manager owns one connection to the relay. On transport loss it schedules a
// reconnect after the fixed retry delay; Close cancels any pending retry and
// the transport. Send while not connected is a silent drop: there is no
// outbound queue.
type Manager struct {
	opts Options

	mu        sync.Mutex
	status    Status
	conn      *websocket.Conn
	retry     *time.Timer
	closed    bool
	onSegment func(domain.DrawSegment)
	onStatus  func(Status)
}

func New(opts Options) *Manager {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	return &Manager{opts: opts}
}

// OnSegment registers the callback invoked once per decoded inbound segment,
// in arrival order. Register before Connect.
func (m *Manager) OnSegment(fn func(domain.DrawSegment)) {
	m.mu.Lock()
	m.onSegment = fn
	m.mu.Unlock()
}

// OnStatus registers the callback invoked on every status transition.
func (m *Manager) OnStatus(fn func(Status)) {
	m.mu.Lock()
	m.onStatus = fn
	m.mu.Unlock()
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Connect starts dialing the relay. It is a no-op while already connecting or
// connected, and after Close.
func (m *Manager) Connect() {
	m.mu.Lock()
	if m.closed || m.status != StatusDisconnected {
		m.mu.Unlock()
		return
	}
	m.status = StatusConnecting
	notify := m.onStatus
	m.mu.Unlock()

	if notify != nil {
		notify(StatusConnecting)
	}
	go m.dial()
}

func (m *Manager) dial() {
	m.mu.Lock()
	url := m.opts.URL
	timeout := m.opts.DialTimeout
	m.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		slog.Warn("relay dial failed", "url", url, "error", err)
		m.connLost(nil)
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		conn.Close()
		return
	}
	m.conn = conn
	m.status = StatusConnected
	notify := m.onStatus
	m.mu.Unlock()

	slog.Info("connected to relay", "url", url)
	if notify != nil {
		notify(StatusConnected)
	}
	go m.readLoop(conn)
}

func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.connLost(conn)
			return
		}

		seg, err := protocol.Decode(data)
		if err != nil {
			slog.Warn("dropping malformed segment", "error", err)
			continue
		}

		m.mu.Lock()
		handler := m.onSegment
		m.mu.Unlock()
		if handler != nil {
			handler(seg)
		}
	}
}

// connLost handles both a failed dial (lost == nil) and a dropped established
// connection. It moves the manager to DISCONNECTED and arms the retry timer.
// Stale connections from an earlier incarnation are ignored.
func (m *Manager) connLost(lost *websocket.Conn) {
	m.mu.Lock()
	if m.closed || lost != m.conn || m.status == StatusDisconnected {
		m.mu.Unlock()
		return
	}
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	m.status = StatusDisconnected
	m.retry = time.AfterFunc(m.opts.RetryDelay, m.retryConnect)
	notify := m.onStatus
	m.mu.Unlock()

	if notify != nil {
		notify(StatusDisconnected)
	}
}

func (m *Manager) retryConnect() {
	m.mu.Lock()
	m.retry = nil
	if m.closed || m.status != StatusDisconnected {
		m.mu.Unlock()
		return
	}
	m.status = StatusConnecting
	notify := m.onStatus
	m.mu.Unlock()

	if notify != nil {
		notify(StatusConnecting)
	}
	m.dial()
}

// Send encodes and transmits one segment. While not connected the segment is
// dropped silently and nil is returned.
func (m *Manager) Send(seg domain.DrawSegment) error {
	data, err := protocol.Encode(seg)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.status != StatusConnected || m.conn == nil {
		m.mu.Unlock()
		return nil
	}
	conn := m.conn
	err = conn.WriteMessage(websocket.TextMessage, data)
	m.mu.Unlock()

	if err != nil {
		m.connLost(conn)
	}
	return nil
}

// Close tears the manager down: pending retry cancelled, transport closed.
// The manager cannot be reused afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.retry != nil {
		m.retry.Stop()
		m.retry = nil
	}
	conn := m.conn
	m.conn = nil
	changed := m.status != StatusDisconnected
	m.status = StatusDisconnected
	notify := m.onStatus
	m.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if changed && notify != nil {
		notify(StatusDisconnected)
	}
}
