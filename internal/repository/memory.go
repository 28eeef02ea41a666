package repository

import (
	"context"
	"sync"

	"feedback-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryFeedbackRepo is an in-process FeedbackStore for local development
// and tests. It lists in insertion order.
type MemoryFeedbackRepo struct {
	mu      sync.RWMutex
	entries map[bson.ObjectID]models.Feedback
	order   []bson.ObjectID
}

func NewMemoryFeedbackRepo() *MemoryFeedbackRepo {
	return &MemoryFeedbackRepo{
		entries: make(map[bson.ObjectID]models.Feedback),
	}
}

func (m *MemoryFeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, infraErr("list", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Feedback, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id])
	}
	return out, nil
}

func (m *MemoryFeedbackRepo) Create(ctx context.Context, payload models.FeedbackPayload) (*models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, infraErr("create", err)
	}
	f := models.NewFeedback(bson.NewObjectID(), payload)
	m.mu.Lock()
	m.entries[f.ID] = f
	m.order = append(m.order, f.ID)
	m.mu.Unlock()
	return &f, nil
}

func (m *MemoryFeedbackRepo) UpdateByID(ctx context.Context, id string, payload models.FeedbackPayload) (*models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, infraErr("update", err)
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, infraErr("update", ErrInvalidID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.entries[oid]
	if !ok {
		return nil, ErrNotFound
	}
	f.Apply(payload)
	m.entries[oid] = f
	return &f, nil
}

func (m *MemoryFeedbackRepo) DeleteByID(ctx context.Context, id string) (*models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, infraErr("delete", err)
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, infraErr("delete", ErrInvalidID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.entries[oid]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.entries, oid)
	for i, o := range m.order {
		if o == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &f, nil
}

func (m *MemoryFeedbackRepo) Ping(ctx context.Context) error {
	return infraErr("ping", ctx.Err())
}
