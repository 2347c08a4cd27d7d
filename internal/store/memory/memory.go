// Package memory provides an in-process store backend for tests and local
// runs. Rows are deep-copied on both write and read so callers never share
// mutable state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lugondev/go-brewstake/internal/store"
)

// Repository implements store.Repository entirely in memory.
type Repository struct {
	mu        sync.RWMutex
	platform  *store.PlatformModel
	pools     map[string]*store.PoolModel
	positions map[string]*store.PositionModel
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		pools:     make(map[string]*store.PoolModel),
		positions: make(map[string]*store.PositionModel),
	}
}

// Platform implements store.Repository.
func (r *Repository) Platform() store.PlatformRepository { return (*platformRepo)(r) }

// Pools implements store.Repository.
func (r *Repository) Pools() store.PoolRepository { return (*poolRepo)(r) }

// Positions implements store.Repository.
func (r *Repository) Positions() store.PositionRepository { return (*positionRepo)(r) }

// Ping implements store.Repository.
func (r *Repository) Ping(ctx context.Context) error { return nil }

// Close implements store.Repository.
func (r *Repository) Close(ctx context.Context) error { return nil }

type platformRepo Repository

func (r *platformRepo) Save(ctx context.Context, platform *store.PlatformModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *platform
	r.platform = &cp
	return nil
}

func (r *platformRepo) Get(ctx context.Context) (*store.PlatformModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.platform == nil {
		return nil, store.ErrNotFound
	}
	cp := *r.platform
	return &cp, nil
}

type poolRepo Repository

func (r *poolRepo) Save(ctx context.Context, pool *store.PoolModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *pool
	r.pools[pool.Key] = &cp
	return nil
}

func (r *poolRepo) FindByKey(ctx context.Context, key string) (*store.PoolModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pool, ok := r.pools[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *pool
	return &cp, nil
}

func (r *poolRepo) FindByOwner(ctx context.Context, owner string, limit, offset int) ([]*store.PoolModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collect(r.pools, limit, offset, func(m *store.PoolModel) (string, bool) {
		return m.Key, m.Owner == owner
	}), nil
}

func (r *poolRepo) FindAll(ctx context.Context, limit, offset int) ([]*store.PoolModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collect(r.pools, limit, offset, func(m *store.PoolModel) (string, bool) {
		return m.Key, true
	}), nil
}

type positionRepo Repository

func (r *positionRepo) Save(ctx context.Context, position *store.PositionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *position
	r.positions[position.Key] = &cp
	return nil
}

func (r *positionRepo) FindByKey(ctx context.Context, key string) (*store.PositionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	position, ok := r.positions[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *position
	return &cp, nil
}

func (r *positionRepo) FindByPool(ctx context.Context, pool string, limit, offset int) ([]*store.PositionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collect(r.positions, limit, offset, func(m *store.PositionModel) (string, bool) {
		return m.Key, m.Pool == pool
	}), nil
}

// collect filters, orders by key for stable pagination, and copies.
func collect[T any](rows map[string]*T, limit, offset int, match func(*T) (string, bool)) []*T {
	type keyed struct {
		key string
		row *T
	}
	var hits []keyed
	for _, row := range rows {
		if key, ok := match(row); ok {
			hits = append(hits, keyed{key: key, row: row})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].key < hits[j].key })

	if offset >= len(hits) {
		return nil
	}
	hits = hits[offset:]
	if limit > 0 && limit < len(hits) {
		hits = hits[:limit]
	}

	out := make([]*T, 0, len(hits))
	for _, h := range hits {
		cp := *h.row
		out = append(out, &cp)
	}
	return out
}
