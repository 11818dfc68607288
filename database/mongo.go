package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weblab-class/MovieGenie/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) error {
	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db = client.Database(cfg.DatabaseName)
	return nil
}

// Close disconnects from MongoDB.
func Close(ctx context.Context) error {
	if client != nil {
		return client.Disconnect(ctx)
	}
	return nil
}

// Users returns the users collection, which also embeds each user's watch
// list.
func Users() *mongo.Collection {
	return db.Collection("users")
}
