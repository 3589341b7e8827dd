package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	SignedIn  = "signed_in"
	SignedOut = "signed_out"
)

// SessionEvent notifies subscribed clients (other tabs, other devices) that
// the session state for a user changed and should be re-derived.
type SessionEvent struct {
	Type   string    `json:"type"`
	UserID uuid.UUID `json:"user_id"`
	At     time.Time `json:"at"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

// Hub fans session events out to every connection subscribed for a user.
// Delivery is fire-and-forget: a client with a full buffer misses the event
// and re-derives its state on the next explicit session fetch.
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
}

// NotifySessionChange broadcasts a session event to every connection owned by
// the user. eventType is SignedIn or SignedOut.
func (h *Hub) NotifySessionChange(userID uuid.UUID, eventType string) {
	data, err := json.Marshal(SessionEvent{
		Type:   eventType,
		UserID: userID,
		At:     time.Now(),
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Client buffer full, skip
		}
	}
}
