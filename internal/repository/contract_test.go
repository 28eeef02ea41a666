package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"feedback-backend/internal/models"
)

const absentID = "000000000000000000000000"

func mustPayload(t *testing.T, body string) models.FeedbackPayload {
	t.Helper()
	p, err := models.ParseFeedbackPayload([]byte(body))
	if err != nil {
		t.Fatalf("ParseFeedbackPayload(%s): %v", body, err)
	}
	return p
}

func asJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

// runStoreContract exercises a FeedbackStore against the behavior every
// backend must share. newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) FeedbackStore) {
	ctx := context.Background()

	t.Run("create then list", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, mustPayload(t, `{"componentData":[1,2],"rightPanelData":{"note":"x"}}`))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.ID.IsZero() {
			t.Fatal("Create did not assign an id")
		}
		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("List returned %d records, want 1", len(list))
		}
		got := asJSON(t, list[0])
		want := `{"id":"` + created.ID.Hex() + `","componentData":[1,2],"rightPanelData":{"note":"x"}}`
		if got != want {
			t.Fatalf("listed %s, want %s", got, want)
		}
	})

	t.Run("create defaults component data", func(t *testing.T) {
		s := newStore(t)
		created, err := s.Create(ctx, mustPayload(t, `{}`))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		list, _ := s.List(ctx)
		if len(list) != 1 || asJSON(t, list[0]) != `{"id":"`+created.ID.Hex()+`","componentData":[]}` {
			t.Fatalf("unexpected list %s", asJSON(t, list))
		}
	})

	t.Run("empty list", func(t *testing.T) {
		s := newStore(t)
		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %d", len(list))
		}
	})

	t.Run("update merges fields", func(t *testing.T) {
		s := newStore(t)
		created, _ := s.Create(ctx, mustPayload(t, `{"componentData":["a"],"rightPanelData":{"k":1}}`))

		updated, err := s.UpdateByID(ctx, created.ID.Hex(), mustPayload(t, `{"rightPanelData":{"k":2,"j":[true]}}`))
		if err != nil {
			t.Fatalf("UpdateByID: %v", err)
		}
		want := `{"id":"` + created.ID.Hex() + `","componentData":["a"],"rightPanelData":{"k":2,"j":[true]}}`
		if got := asJSON(t, updated); got != want {
			t.Fatalf("updated %s, want %s", got, want)
		}

		same, err := s.UpdateByID(ctx, created.ID.Hex(), models.FeedbackPayload{})
		if err != nil {
			t.Fatalf("empty UpdateByID: %v", err)
		}
		if got := asJSON(t, same); got != want {
			t.Fatalf("empty update changed record: %s", got)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.UpdateByID(ctx, absentID, mustPayload(t, `{"componentData":[]}`))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("delete returns removed record", func(t *testing.T) {
		s := newStore(t)
		created, _ := s.Create(ctx, mustPayload(t, `{"componentData":[3]}`))
		deleted, err := s.DeleteByID(ctx, created.ID.Hex())
		if err != nil {
			t.Fatalf("DeleteByID: %v", err)
		}
		if deleted.ID != created.ID {
			t.Fatalf("deleted %s, want %s", deleted.ID.Hex(), created.ID.Hex())
		}
		if _, err := s.DeleteByID(ctx, created.ID.Hex()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("second delete: got %v, want ErrNotFound", err)
		}
	})

	t.Run("delete missing leaves collection", func(t *testing.T) {
		s := newStore(t)
		_, _ = s.Create(ctx, mustPayload(t, `{"componentData":[1]}`))
		if _, err := s.DeleteByID(ctx, absentID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
		list, _ := s.List(ctx)
		if len(list) != 1 {
			t.Fatalf("collection changed: %d records", len(list))
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		s := newStore(t)
		_, err := s.DeleteByID(ctx, "not-an-id")
		var infra *InfrastructureError
		if !errors.As(err, &infra) || !errors.Is(err, ErrInvalidID) {
			t.Fatalf("delete: got %v, want InfrastructureError(ErrInvalidID)", err)
		}
		if _, err := s.UpdateByID(ctx, "xyz", models.FeedbackPayload{}); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("update: got %v, want ErrInvalidID", err)
		}
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		s := newStore(t)
		const n = 20
		var wg sync.WaitGroup
		ids := make(chan string, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				f, err := s.Create(ctx, models.FeedbackPayload{ComponentData: ptr(models.Array(models.Int(int64(i))))})
				if err != nil {
					t.Errorf("Create: %v", err)
					return
				}
				ids <- f.ID.Hex()
			}(i)
		}
		wg.Wait()
		close(ids)
		seen := map[string]bool{}
		for id := range ids {
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
		if len(seen) != n {
			t.Fatalf("got %d ids, want %d", len(seen), n)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := newStore(t).Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})
}

func ptr(v models.Value) *models.Value { return &v }
