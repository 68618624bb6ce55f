package database

import (
	"context"
	"fmt"

	"github.com/orgsite-blog/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// PostsCollection is the name of the posts collection
const PostsCollection = "posts"

// MongoDB wraps a connected client and the application database
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	log      zerolog.Logger
}

// NewMongo connects to MongoDB and verifies the connection
func NewMongo(ctx context.Context, cfg *config.DatabaseConfig, log zerolog.Logger) (*MongoDB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URL).
		SetMaxPoolSize(uint64(cfg.MaxOpenConns)).
		SetMinPoolSize(uint64(cfg.MaxIdleConns)).
		SetMaxConnIdleTime(cfg.MaxLifetime)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := &MongoDB{
		Client:   client,
		Database: client.Database(cfg.MongoDatabase),
		log:      log.With().Str("component", "database").Str("driver", config.DriverMongo).Logger(),
	}

	m.log.Info().
		Str("database", cfg.MongoDatabase).
		Uint64("max_pool_size", uint64(cfg.MaxOpenConns)).
		Msg("Database connection established")

	return m, nil
}

// EnsureIndexes creates the unique slug index and the listing sort index
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("posts_slug_key"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("posts_created_at_idx"),
		},
	}

	names, err := m.Database.Collection(PostsCollection).Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	m.log.Info().Strs("indexes", names).Msg("Indexes ensured")
	return nil
}

// Posts returns the posts collection
func (m *MongoDB) Posts() *mongo.Collection {
	return m.Database.Collection(PostsCollection)
}

// HealthCheck verifies the connection is healthy
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *MongoDB) Close() error {
	return m.Client.Disconnect(context.Background())
}
