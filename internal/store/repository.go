// Package store defines the durable account-store consumed by the engine:
// whole-record reads and writes keyed by derived addresses, with
// interchangeable memory, PostgreSQL and MongoDB backends.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist. Backends map their
// driver-specific miss onto it.
var ErrNotFound = errors.New("record not found")

// PlatformRepository stores the singleton platform registry.
type PlatformRepository interface {
	Save(ctx context.Context, platform *PlatformModel) error
	Get(ctx context.Context) (*PlatformModel, error)
}

// PoolRepository stores pool rows keyed by the derived pool address.
type PoolRepository interface {
	Save(ctx context.Context, pool *PoolModel) error
	FindByKey(ctx context.Context, key string) (*PoolModel, error)
	FindByOwner(ctx context.Context, owner string, limit int, offset int) ([]*PoolModel, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*PoolModel, error)
}

// PositionRepository stores position rows keyed by the derived position address.
type PositionRepository interface {
	Save(ctx context.Context, position *PositionModel) error
	FindByKey(ctx context.Context, key string) (*PositionModel, error)
	FindByPool(ctx context.Context, pool string, limit int, offset int) ([]*PositionModel, error)
}

// Repository bundles the record repositories behind one backend connection.
type Repository interface {
	Platform() PlatformRepository
	Pools() PoolRepository
	Positions() PositionRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
