package ws

import (
	"encoding/json"
	"time"

	"talent-match/internal/domain/application"

	"github.com/google/uuid"
)

type StatusChangedEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"application_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	Timestamp     string `json:"timestamp"`
}

// Notifier pushes committed status transitions to connected clients. It is an
// explicit dependency handed to the application usecase, not a package-level
// default.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyStatusChanged(applicationID uuid.UUID, oldStatus, newStatus application.Status) {
	if n == nil || n.hub == nil {
		return
	}

	evt := StatusChangedEvent{
		Type:          "application_status_changed",
		ApplicationID: applicationID.String(),
		OldStatus:     string(oldStatus),
		NewStatus:     string(newStatus),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
