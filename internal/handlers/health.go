package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"feedback-backend/internal/repository"
)

type HealthHandler struct {
	store   repository.FeedbackStore
	service string
}

func NewHealthHandler(store repository.FeedbackStore, service string) *HealthHandler {
	return &HealthHandler{store: store, service: service}
}

// --- GET /health ---

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Printf("⚠️  Health check: store unreachable: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "degraded",
			"service": h.service,
			"error":   "database unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}
