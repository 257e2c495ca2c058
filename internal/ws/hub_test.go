package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesClients(t *testing.T) {
	h := NewHub(nil, nil)
	go h.Run()
	defer h.Stop()

	a := &Client{hub: h, send: make(chan []byte, 4)}
	b := &Client{hub: h, send: make(chan []byte, 4)}
	h.Register(a)
	h.Register(b)
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	id := uuid.New()
	h.NotifyChange("application", ActionCreated, id)

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			var evt EntityChangedEvent
			require.NoError(t, json.Unmarshal(msg, &evt))
			assert.Equal(t, "entity_changed", evt.Type)
			assert.Equal(t, "application", evt.Entity)
			assert.Equal(t, ActionCreated, evt.Action)
			assert.Equal(t, id.String(), evt.ID)
			_, err := time.Parse(time.RFC3339, evt.Timestamp)
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("broadcast not delivered")
		}
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub(nil, nil)
	go h.Run()
	defer h.Stop()

	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.Register(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_SlowClientDropped(t *testing.T) {
	h := NewHub(nil, nil)
	go h.Run()
	defer h.Stop()

	slow := &Client{hub: h, send: make(chan []byte)}
	h.Register(slow)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.Broadcast([]byte("x"))
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNilHub(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() {
		h.NotifyChange("company", ActionDeleted, uuid.New())
		h.Broadcast([]byte("x"))
		h.Stop()
	})
	assert.Zero(t, h.ClientCount())
}
