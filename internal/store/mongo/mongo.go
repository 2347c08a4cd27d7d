// Package mongo implements the account store on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lugondev/go-brewstake/internal/config"
	"github.com/lugondev/go-brewstake/internal/store"
)

func init() {
	store.RegisterMongoFactory(func(ctx context.Context, cfg *config.MongoDBConfig) (store.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository implements store.Repository on a MongoDB database.
type Repository struct {
	client       *mongo.Client
	database     *mongo.Database
	platformRepo store.PlatformRepository
	poolRepo     store.PoolRepository
	positionRepo store.PositionRepository
}

// NewRepository connects, ensures indexes, and returns the backend.
func NewRepository(ctx context.Context, cfg *config.MongoDBConfig) (*Repository, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)

	repo := &Repository{
		client:       client,
		database:     database,
		platformRepo: &platformRepository{collection: database.Collection("platform")},
		poolRepo:     &poolRepository{collection: database.Collection("pools")},
		positionRepo: &positionRepository{collection: database.Collection("positions")},
	}

	if err := repo.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return repo, nil
}

func (r *Repository) createIndexes(ctx context.Context) error {
	poolIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	}
	if _, err := r.database.Collection("pools").Indexes().CreateMany(ctx, poolIndexes); err != nil {
		return err
	}

	positionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "pool", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	}
	_, err := r.database.Collection("positions").Indexes().CreateMany(ctx, positionIndexes)
	return err
}

// Platform implements store.Repository.
func (r *Repository) Platform() store.PlatformRepository { return r.platformRepo }

// Pools implements store.Repository.
func (r *Repository) Pools() store.PoolRepository { return r.poolRepo }

// Positions implements store.Repository.
func (r *Repository) Positions() store.PositionRepository { return r.positionRepo }

// Ping implements store.Repository.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close implements store.Repository.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
