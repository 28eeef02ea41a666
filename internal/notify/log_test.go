package notify

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"feedback-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestLogNotifier_Publish(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(log.New(&buf, "", 0))
	record := models.NewFeedback(bson.NewObjectID(), models.FeedbackPayload{})

	tests := []struct {
		kind EventKind
		want string
	}{
		{EventCreated, "Feedback created with id " + record.ID.Hex() + `: {"id":"` + record.ID.Hex() + `","componentData":[]}`},
		{EventUpdated, "Feedback updated with id " + record.ID.Hex()},
		{EventDeleted, "Deleted feedback with id: " + record.ID.Hex()},
	}
	for _, tt := range tests {
		buf.Reset()
		if err := n.Publish(context.Background(), Event{Kind: tt.kind, Record: record}); err != nil {
			t.Fatalf("Publish(%s): %v", tt.kind, err)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("Publish(%s) logged %q, want it to contain %q", tt.kind, buf.String(), tt.want)
		}
	}
}

func TestLogNotifier_UnknownKind(t *testing.T) {
	n := NewLogNotifier(log.New(&bytes.Buffer{}, "", 0))
	if err := n.Publish(context.Background(), Event{Kind: "archived"}); err == nil {
		t.Fatal("expected error for unknown event kind")
	}
}
