package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifySessionChangeReachesOwnConnectionsOnly(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	mine := &Client{ID: "a", UserID: userID, Send: make(chan []byte, 1)}
	other := &Client{ID: "b", UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.Register(mine)
	hub.Register(other)

	hub.NotifySessionChange(userID, SignedOut)

	select {
	case data := <-mine.Send:
		var event SessionEvent
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, SignedOut, event.Type)
		assert.Equal(t, userID, event.UserID)
	case <-time.After(time.Second):
		t.Fatal("expected a session event")
	}

	select {
	case <-other.Send:
		t.Fatal("event leaked to another user's connection")
	default:
	}
}

func TestNotifySessionChangeSkipsFullBuffers(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	client := &Client{ID: "a", UserID: userID, Send: make(chan []byte, 1)}
	hub.Register(client)

	hub.NotifySessionChange(userID, SignedIn)
	// The buffer is full now; this delivery is dropped instead of blocking.
	hub.NotifySessionChange(userID, SignedIn)

	assert.Len(t, client.Send, 1)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	client := &Client{ID: "a", UserID: uuid.New(), Send: make(chan []byte, 1)}

	hub.Register(client)
	hub.Unregister(client)

	_, open := <-client.Send
	assert.False(t, open)

	// A second unregister of the same client is harmless.
	hub.Unregister(client)
}
