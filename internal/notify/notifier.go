package notify

import (
	"context"

	"feedback-backend/internal/models"
)

type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// Event describes one completed change to a feedback document.
type Event struct {
	Kind   EventKind
	Record models.Feedback
}

// Notifier publishes feedback lifecycle events. Handlers call it after the
// store succeeds; a failed publish never changes the HTTP response.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}
