package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type EntityChangedEvent struct {
	Type      string `json:"type"`
	Entity    string `json:"entity"`
	Action    Action `json:"action"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

func NewEntityChanged(entity string, action Action, id uuid.UUID, now time.Time) EntityChangedEvent {
	return EntityChangedEvent{
		Type:      "entity_changed",
		Entity:    entity,
		Action:    action,
		ID:        id.String(),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// NotifyChange broadcasts an entity_changed event to every connected client.
func (h *Hub) NotifyChange(entity string, action Action, id uuid.UUID) {
	if h == nil {
		return
	}
	b, err := json.Marshal(NewEntityChanged(entity, action, id, time.Now()))
	if err != nil {
		return
	}
	h.Broadcast(b)
}
