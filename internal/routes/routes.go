package routes

import (
	"net/http"

	"feedback-backend/internal/handlers"
	customMiddleware "feedback-backend/internal/middleware"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes matches the usual JSON body parser cap of 100kb.
const maxBodyBytes int64 = 100 << 10

// Deps are the long-lived objects the router hands to its handlers.
type Deps struct {
	Store         repository.FeedbackStore
	Notifier      notify.Notifier
	AllowedOrigin string
	Service       string
}

func NewRouter(d Deps) http.Handler {
	feedbackHandler := handlers.NewFeedbackHandler(d.Store, d.Notifier)
	healthHandler := handlers.NewHealthHandler(d.Store, d.Service)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(customMiddleware.CORS(d.AllowedOrigin))
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/health", healthHandler.Check)

	r.Get("/api/feedback", feedbackHandler.ListFeedback)
	r.Post("/api/feedback", feedbackHandler.CreateFeedback)
	r.Put("/api/feedback/{id}", feedbackHandler.UpdateFeedback)
	r.Delete("/api/feedback/{id}", feedbackHandler.DeleteFeedback)

	return r
}
