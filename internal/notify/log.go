package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// LogNotifier writes each event to a logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier returns a notifier writing to logger, or to the standard
// logger when logger is nil.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Publish(ctx context.Context, event Event) error {
	switch event.Kind {
	case EventCreated, EventUpdated:
		data, err := json.Marshal(event.Record)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", event.Kind, err)
		}
		n.logger.Printf("📝 Feedback %s with id %s: %s", event.Kind, event.Record.ID.Hex(), data)
	case EventDeleted:
		n.logger.Printf("🗑️  Deleted feedback with id: %s", event.Record.ID.Hex())
	default:
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
	return nil
}
