package database

import (
	"context"
	"fmt"

	"github.com/sangkips/flowpilot-api/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// NewMongoDB connects to MongoDB, verifies the connection and returns the configured database
func NewMongoDB(ctx context.Context, cfg *config.MongoConfig, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("mongo connection URI is empty")
	}

	clientOptions := options.Client().ApplyURI(cfg.URI).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetConnectTimeout(cfg.Timeout).
		SetSocketTimeout(2 * cfg.Timeout)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Successfully connected to MongoDB", zap.String("database", cfg.Database))
	return client, client.Database(cfg.Database), nil
}

// CloseMongo disconnects the client
func CloseMongo(ctx context.Context, client *mongo.Client, log *zap.Logger) error {
	if err := client.Disconnect(ctx); err != nil {
		log.Error("Failed to disconnect MongoDB client", zap.Error(err))
		return err
	}
	log.Info("Disconnected from MongoDB")
	return nil
}
