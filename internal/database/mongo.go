package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ConnectMongo creates the process-wide MongoDB client. It is created once at
// startup and shared by every request; the driver is safe for concurrent use.
// Only an unusable URI is returned as an error. An unreachable server is
// logged and the client is returned anyway, so requests fail at the store
// until the server comes up.
func ConnectMongo(uri string) (*mongo.Client, error) {
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Printf("❌ MongoDB connection error: %v", err)
		return client, nil
	}

	log.Println("✅ Connected to MongoDB")
	return client, nil
}
