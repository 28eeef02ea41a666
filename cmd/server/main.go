package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"feedback-backend/internal/config"
	"feedback-backend/internal/database"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/routes"

	"github.com/joho/godotenv"
)

const serviceName = "feedback-backend"

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s store: %v", cfg.StoreDriver, err)
	}

	router := routes.NewRouter(routes.Deps{
		Store:         store,
		Notifier:      notify.NewLogNotifier(nil),
		AllowedOrigin: cfg.AllowedOrigin,
		Service:       serviceName,
	})

	log.Printf("🚀 Backend server is running at http://localhost:%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

// openStore creates the single store instance for the process lifetime.
// Unreachable databases are logged by the database package and do not stop
// startup.
func openStore(cfg *config.Config) (repository.FeedbackStore, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		log.Printf("Connecting to PostgreSQL at %s...", config.MaskURI(cfg.DatabaseURL))
		pool, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresFeedbackRepo(pool)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Printf("⚠️  Warning: failed to create feedbacks table: %v", err)
		}
		return repo, nil

	case config.DriverMemory:
		log.Println("⚠️  Using in-memory store, data is lost on restart")
		return repository.NewMemoryFeedbackRepo(), nil

	default:
		log.Printf("Connecting to MongoDB at %s (database %s)...", config.MaskURI(cfg.MongoURI), cfg.DBName)
		client, err := database.ConnectMongo(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return repository.NewFeedbackRepo(client.Database(cfg.DBName)), nil
	}
}
