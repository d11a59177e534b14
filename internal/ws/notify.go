package ws

import (
	"encoding/json"
	"time"

	"itapp/internal/domain/notification"
)

type NotificationEvent struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// Notifier pushes stored notifications to the student's open sockets.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) Push(note notification.Notification) {
	if n == nil || n.hub == nil {
		return
	}

	b, err := json.Marshal(NotificationEvent{
		Type:      "notification",
		ID:        note.ID.String(),
		Title:     note.Title,
		Body:      note.Body,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.SendTo(note.StudentID, b)
}
