package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Phaneesh28/project-backend/pkg/config"
)

// ConnectMongo dials the deployment and returns the configured database.
// Callers disconnect through db.Client().
func ConnectMongo(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(uint64(cfg.MaxConns)).
		SetMinPoolSize(uint64(cfg.MinConns)).
		SetMaxConnIdleTime(cfg.MaxLifetime).
		// nested documents (product specs) decode to maps so they encode back to JSON objects
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(cfg.MongoDatabase), nil
}
