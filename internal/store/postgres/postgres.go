// Package postgres implements the account store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lugondev/go-brewstake/internal/config"
	"github.com/lugondev/go-brewstake/internal/store"
)

func init() {
	store.RegisterPostgresFactory(func(ctx context.Context, cfg *config.PostgresConfig) (store.Repository, error) {
		return NewRepository(ctx, cfg)
	})
}

// Repository implements store.Repository on a pgx connection pool.
type Repository struct {
	pool         *pgxpool.Pool
	platformRepo store.PlatformRepository
	poolRepo     store.PoolRepository
	positionRepo store.PositionRepository
}

// NewRepository connects, runs migrations, and returns the backend.
func NewRepository(ctx context.Context, cfg *config.PostgresConfig) (*Repository, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.ConnMaxLifetime) * time.Second
	}
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Repository{
		pool:         pool,
		platformRepo: &platformRepository{pool: pool},
		poolRepo:     &poolRepository{pool: pool},
		positionRepo: &positionRepository{pool: pool},
	}, nil
}

// Platform implements store.Repository.
func (r *Repository) Platform() store.PlatformRepository { return r.platformRepo }

// Pools implements store.Repository.
func (r *Repository) Pools() store.PoolRepository { return r.poolRepo }

// Positions implements store.Repository.
func (r *Repository) Positions() store.PositionRepository { return r.positionRepo }

// Ping implements store.Repository.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close implements store.Repository.
func (r *Repository) Close(ctx context.Context) error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}
