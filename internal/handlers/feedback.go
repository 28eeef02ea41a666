package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"feedback-backend/internal/models"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	store    repository.FeedbackStore
	notifier notify.Notifier
}

func NewFeedbackHandler(store repository.FeedbackStore, notifier notify.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		store:    store,
		notifier: notifier,
	}
}

// --- GET /api/feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.store.List(r.Context())
	if err != nil {
		log.Printf("Failed to retrieve feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve feedback")
		return
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	writeJSON(w, http.StatusOK, feedbacks)
}

// --- POST /api/feedback ---

func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	payload, body, ok := readPayload(w, r)
	if !ok {
		return
	}
	log.Printf("Received data: %s", body)

	created, err := h.store.Create(r.Context(), payload)
	if err != nil {
		log.Printf("Failed to save feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	h.publish(r.Context(), notify.EventCreated, created)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Feedback saved successfully",
	})
}

// --- PUT /api/feedback/{id} ---

func (h *FeedbackHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	payload, _, ok := readPayload(w, r)
	if !ok {
		return
	}

	updated, err := h.store.UpdateByID(r.Context(), id, payload)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Feedback not found")
			return
		}
		log.Printf("Failed to update feedback with id: %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update feedback")
		return
	}

	h.publish(r.Context(), notify.EventUpdated, updated)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Feedback updated successfully",
		"data":    updated,
	})
}

// --- DELETE /api/feedback/{id} ---

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.store.DeleteByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Feedback not found")
			return
		}
		log.Printf("Failed to delete feedback with id: %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete feedback")
		return
	}

	h.publish(r.Context(), notify.EventDeleted, deleted)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Feedback deleted successfully",
	})
}

// --- Helpers ---

// readPayload parses a JSON request body, writing a 400 or 413 response itself
// when it cannot. Bodies sent with any other content type are ignored and read
// as an empty object.
func readPayload(w http.ResponseWriter, r *http.Request) (models.FeedbackPayload, []byte, bool) {
	if !isJSON(r) {
		return models.FeedbackPayload{}, []byte("{}"), true
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return models.FeedbackPayload{}, nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return models.FeedbackPayload{}, nil, false
	}

	payload, err := models.ParseFeedbackPayload(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return models.FeedbackPayload{}, nil, false
	}
	return payload, body, true
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func (h *FeedbackHandler) publish(ctx context.Context, kind notify.EventKind, record *models.Feedback) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Publish(ctx, notify.Event{Kind: kind, Record: *record}); err != nil {
		log.Printf("Error publishing %s event: %v", kind, err)
	}
}
