package hub

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConn struct {
	id       string
	received [][]byte
	closed   bool
	sendErr  error
	mu       sync.Mutex
}

func (m *mockConn) ID() string { return m.id }

func (m *mockConn) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.received = append(m.received, data)
	return nil
}

func (m *mockConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConn) getReceived() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.received
}

func TestHub_Broadcast(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(*Hub) ([]*mockConn, *mockConn)
		wantReceived map[string]int
	}{
		{
			name: "fan-out reaches everyone but the sender",
			setup: func(h *Hub) ([]*mockConn, *mockConn) {
				sender := &mockConn{id: "sender"}
				recv1 := &mockConn{id: "recv1"}
				recv2 := &mockConn{id: "recv2"}
				recv3 := &mockConn{id: "recv3"}
				h.Register(sender)
				h.Register(recv1)
				h.Register(recv2)
				h.Register(recv3)
				return []*mockConn{recv1, recv2, recv3}, sender
			},
			wantReceived: map[string]int{"recv1": 1, "recv2": 1, "recv3": 1},
		},
		{
			name: "sender alone receives nothing",
			setup: func(h *Hub) ([]*mockConn, *mockConn) {
				sender := &mockConn{id: "sender"}
				h.Register(sender)
				return []*mockConn{sender}, sender
			},
			wantReceived: map[string]int{"sender": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			receivers, sender := tt.setup(h)

			h.Broadcast(sender, []byte("segment"))

			for _, r := range receivers {
				assert.Len(t, r.getReceived(), tt.wantReceived[r.ID()], "receiver %s", r.ID())
			}
		})
	}
}

func TestHub_BroadcastPayloadUnchanged(t *testing.T) {
	h := New()
	a := &mockConn{id: "A"}
	b := &mockConn{id: "B"}
	h.Register(a)
	h.Register(b)

	payload := []byte(`{"prevX":10,"prevY":10,"x":20,"y":15,"color":"#FF0000"}`)
	h.Broadcast(a, payload)

	got := b.getReceived()
	require.Len(t, got, 1)
	assert.Equal(t, payload, got[0])
	assert.Empty(t, a.getReceived())
}

func TestHub_BroadcastIsolatesFailures(t *testing.T) {
	h := New()
	sender := &mockConn{id: "sender"}
	failing := &mockConn{id: "failing", sendErr: errors.New("transport closing")}
	ok1 := &mockConn{id: "ok1"}
	ok2 := &mockConn{id: "ok2"}
	h.Register(sender)
	h.Register(failing)
	h.Register(ok1)
	h.Register(ok2)

	h.Broadcast(sender, []byte("segment"))

	assert.Len(t, ok1.getReceived(), 1)
	assert.Len(t, ok2.getReceived(), 1)

	// The failing participant is evicted out of band.
	require.Eventually(t, func() bool {
		return h.Count() == 3
	}, time.Second, 10*time.Millisecond)
}

func TestHub_PerSenderOrder(t *testing.T) {
	h := New()
	sender := &mockConn{id: "sender"}
	recv := &mockConn{id: "recv"}
	h.Register(sender)
	h.Register(recv)

	h.Broadcast(sender, []byte("first"))
	h.Broadcast(sender, []byte("second"))
	h.Broadcast(sender, []byte("third"))

	got := recv.getReceived()
	require.Len(t, got, 3)
	assert.Equal(t, []byte("first"), got[0])
	assert.Equal(t, []byte("second"), got[1])
	assert.Equal(t, []byte("third"), got[2])
}

func TestHub_Count(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Count())

	c1 := &mockConn{id: "c1"}
	c2 := &mockConn{id: "c2"}
	h.Register(c1)
	h.Register(c2)
	assert.Equal(t, 2, h.Count())

	h.Unregister(c1)
	assert.Equal(t, 1, h.Count())

	// Unregistering twice is harmless.
	h.Unregister(c1)
	assert.Equal(t, 1, h.Count())
}
