package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tomlord1122/todo-auth-backend/internal/config"
)

// MongoService owns the MongoDB client for the document-store backend.
type MongoService struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to cfg.MongoURI and verifies the connection with a ping.
func NewMongo(ctx context.Context, cfg config.Database) (*MongoService, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoService{client: client, db: client.Database(cfg.MongoDatabase)}, nil
}

func (s *MongoService) Database() *mongo.Database {
	return s.db
}

func (s *MongoService) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := map[string]string{"driver": config.DriverMongo, "database": s.db.Name()}
	if err := s.client.Ping(ctx, nil); err != nil {
		stats["status"] = "down"
		stats["error"] = "db down"
		log.Printf("mongo down: %v", err)
		return stats
	}
	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["open_sessions"] = fmt.Sprint(s.client.NumberSessionsInProgress())
	return stats
}

func (s *MongoService) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Printf("Disconnecting from mongo database: %s", s.db.Name())
	return s.client.Disconnect(ctx)
}
