package store

import (
	"context"

	"github.com/lugondev/go-brewstake/internal/config"
)

var (
	mongoFactory    func(context.Context, *config.MongoDBConfig) (Repository, error)
	postgresFactory func(context.Context, *config.PostgresConfig) (Repository, error)
)

// RegisterMongoFactory is called by the mongo backend's init.
func RegisterMongoFactory(factory func(context.Context, *config.MongoDBConfig) (Repository, error)) {
	mongoFactory = factory
}

// RegisterPostgresFactory is called by the postgres backend's init.
func RegisterPostgresFactory(factory func(context.Context, *config.PostgresConfig) (Repository, error)) {
	postgresFactory = factory
}

// NewMongoRepositoryFromConfig opens the mongo backend.
func NewMongoRepositoryFromConfig(ctx context.Context, cfg *config.MongoDBConfig) (Repository, error) {
	if mongoFactory == nil {
		panic("mongo factory not registered - import _ \"github.com/lugondev/go-brewstake/internal/store/mongo\"")
	}
	return mongoFactory(ctx, cfg)
}

// NewPostgresRepositoryFromConfig opens the postgres backend.
func NewPostgresRepositoryFromConfig(ctx context.Context, cfg *config.PostgresConfig) (Repository, error) {
	if postgresFactory == nil {
		panic("postgres factory not registered - import _ \"github.com/lugondev/go-brewstake/internal/store/postgres\"")
	}
	return postgresFactory(ctx, cfg)
}
