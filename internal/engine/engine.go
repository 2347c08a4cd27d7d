// Package engine implements the staking engine's public operations: pool
// creation and start, stake, unstake, claim and compound.
//
// Every mutating operation follows the same shape: load the records it
// names, advance the pool accumulator to the current slot, compute the full
// set of token movements, apply them through the ledger as one all-or-nothing
// batch, and only then persist the updated records. A failed operation leaves
// no partial balance changes behind.
package engine

import (
	"context"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/clock"
	"github.com/lugondev/go-brewstake/internal/errors"
	"github.com/lugondev/go-brewstake/internal/events"
	"github.com/lugondev/go-brewstake/internal/ledger"
	"github.com/lugondev/go-brewstake/internal/metrics"
	"github.com/lugondev/go-brewstake/internal/staking"
	"github.com/lugondev/go-brewstake/internal/store"
)

// Engine applies staking operations against the store and ledger.
type Engine struct {
	programID solana.PublicKey
	store     store.Repository
	ledger    ledger.Ledger
	clock     clock.Clock
	logger    *slog.Logger
	metrics   metrics.Metrics
	emitter   *events.Emitter
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the metrics backend.
func WithMetrics(m metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithEmitter sets the event emitter.
func WithEmitter(em *events.Emitter) Option {
	return func(e *Engine) { e.emitter = em }
}

// New creates an Engine over the given collaborators.
func New(programID solana.PublicKey, st store.Repository, ld ledger.Ledger, cl clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		programID: programID,
		store:     st,
		ledger:    ld,
		clock:     cl,
		logger:    slog.Default(),
		metrics:   metrics.NewNoopMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pool is a pool's config and state as returned to callers.
type Pool struct {
	Key    solana.PublicKey
	Config staking.PoolConfig
	State  staking.PoolState
}

// Position is a staker's position as returned to callers.
type Position struct {
	Key   solana.PublicKey
	Pool  solana.PublicKey
	Owner solana.PublicKey
	Info  staking.UserInfo
}

// CurrentSlot reports the slot the engine's clock stands at.
func (e *Engine) CurrentSlot(ctx context.Context) (uint64, error) {
	return e.clock.CurrentSlot(ctx)
}

// PoolKeyFor exposes the deterministic pool address derivation.
func (e *Engine) PoolKeyFor(owner solana.PublicKey, poolID string) (solana.PublicKey, error) {
	return staking.PoolKey(e.programID, owner, poolID)
}

// Platform returns the platform registry.
func (e *Engine) Platform(ctx context.Context) (*staking.Platform, error) {
	return e.loadPlatform(ctx)
}

// GetPool returns one pool by its derived key.
func (e *Engine) GetPool(ctx context.Context, key solana.PublicKey) (*Pool, error) {
	model, err := e.store.Pools().FindByKey(ctx, key.String())
	if err == store.ErrNotFound {
		return nil, errors.ErrPoolNotFound
	}
	if err != nil {
		return nil, errors.StoreFailed("find pool", err)
	}
	return poolFromModel(model)
}

// ListPools returns pools ordered by key.
func (e *Engine) ListPools(ctx context.Context, limit, offset int) ([]*Pool, error) {
	models, err := e.store.Pools().FindAll(ctx, limit, offset)
	if err != nil {
		return nil, errors.StoreFailed("list pools", err)
	}
	return poolsFromModels(models)
}

// PoolsByOwner returns pools created by one owner.
func (e *Engine) PoolsByOwner(ctx context.Context, owner solana.PublicKey, limit, offset int) ([]*Pool, error) {
	models, err := e.store.Pools().FindByOwner(ctx, owner.String(), limit, offset)
	if err != nil {
		return nil, errors.StoreFailed("list pools by owner", err)
	}
	return poolsFromModels(models)
}

// GetPosition returns a staker's position in a pool.
func (e *Engine) GetPosition(ctx context.Context, pool, user solana.PublicKey) (*Position, error) {
	key, err := staking.PositionKey(e.programID, pool, user)
	if err != nil {
		return nil, err
	}
	model, err := e.store.Positions().FindByKey(ctx, key.String())
	if err == store.ErrNotFound {
		return nil, errors.ErrPositionNotFound
	}
	if err != nil {
		return nil, errors.StoreFailed("find position", err)
	}
	return &Position{Key: key, Pool: pool, Owner: user, Info: *model.UserInfo()}, nil
}

// Pending returns the reward the user could claim right now, simulated
// against the current slot without mutating any record.
func (e *Engine) Pending(ctx context.Context, pool, user solana.PublicKey) (uint64, error) {
	_, _, state, err := e.loadPool(ctx, pool)
	if err != nil {
		return 0, err
	}
	if !state.Started() {
		return 0, nil
	}

	now, err := e.clock.CurrentSlot(ctx)
	if err != nil {
		return 0, err
	}
	if err := staking.UpdateAccrual(state, now); err != nil {
		return 0, err
	}

	pos, err := e.GetPosition(ctx, pool, user)
	if errors.Is(err, errors.ErrPositionNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return staking.Pending(&pos.Info, state)
}

func (e *Engine) loadPlatform(ctx context.Context) (*staking.Platform, error) {
	model, err := e.store.Platform().Get(ctx)
	if err == store.ErrNotFound {
		return nil, errors.ErrPlatformNotInitialized
	}
	if err != nil {
		return nil, errors.StoreFailed("get platform", err)
	}
	return model.Platform()
}

// loadPool reads a pool row and splits it into config and state copies.
func (e *Engine) loadPool(ctx context.Context, key solana.PublicKey) (*store.PoolModel, *staking.PoolConfig, *staking.PoolState, error) {
	model, err := e.store.Pools().FindByKey(ctx, key.String())
	if err == store.ErrNotFound {
		return nil, nil, nil, errors.ErrPoolNotFound
	}
	if err != nil {
		return nil, nil, nil, errors.StoreFailed("find pool", err)
	}
	cfg, err := model.Config()
	if err != nil {
		return nil, nil, nil, errors.StoreFailed("decode pool config", err)
	}
	return model, cfg, model.State(), nil
}

func poolFromModel(m *store.PoolModel) (*Pool, error) {
	key, err := solana.PublicKeyFromBase58(m.Key)
	if err != nil {
		return nil, err
	}
	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	return &Pool{Key: key, Config: *cfg, State: *m.State()}, nil
}

func poolsFromModels(models []*store.PoolModel) ([]*Pool, error) {
	out := make([]*Pool, 0, len(models))
	for _, m := range models {
		p, err := poolFromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (e *Engine) emit(ctx context.Context, ev *events.Event) {
	if e.emitter != nil {
		e.emitter.Emit(ctx, ev)
	}
}

// userVault resolves a user's token account for a mint as its associated
// token account.
func userVault(user, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindAssociatedTokenAddress(user, mint)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive user vault")
	}
	return addr, nil
}
