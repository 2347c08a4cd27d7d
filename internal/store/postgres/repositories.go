package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lugondev/go-brewstake/internal/store"
)

type platformRepository struct {
	pool *pgxpool.Pool
}

func (r *platformRepository) Save(ctx context.Context, platform *store.PlatformModel) error {
	query := `
		INSERT INTO platform (id, treasury, deploy_fee, stake_fee_bps, unstake_fee_bps, updated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			treasury = $2, deploy_fee = $3, stake_fee_bps = $4, unstake_fee_bps = $5, updated_at = $6
	`
	_, err := r.pool.Exec(ctx, query,
		platform.ID, platform.Treasury, platform.DeployFee,
		platform.StakeFeeBps, platform.UnstakeFeeBps,
		platform.UpdatedAt, platform.CreatedAt,
	)
	return err
}

func (r *platformRepository) Get(ctx context.Context) (*store.PlatformModel, error) {
	query := `SELECT id, treasury, deploy_fee, stake_fee_bps, unstake_fee_bps, updated_at, created_at
		FROM platform WHERE id = $1`

	var m store.PlatformModel
	err := r.pool.QueryRow(ctx, query, store.PlatformID).Scan(
		&m.ID, &m.Treasury, &m.DeployFee, &m.StakeFeeBps, &m.UnstakeFeeBps,
		&m.UpdatedAt, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type poolRepository struct {
	pool *pgxpool.Pool
}

const poolColumns = `key, owner, pool_id, stake_mint, reward_mint, stake_decimals, reward_decimals,
	stake_fee_bps, unstake_fee_bps, stake_vault, reward_vault,
	total_staked, reward_amount, reward_per_slot, acc_reward_per_share,
	last_update_slot, start_slot, end_slot, updated_at, created_at`

func (r *poolRepository) Save(ctx context.Context, pool *store.PoolModel) error {
	query := `
		INSERT INTO pools (` + poolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (key) DO UPDATE SET
			total_staked = $12, reward_amount = $13, reward_per_slot = $14,
			acc_reward_per_share = $15, last_update_slot = $16, start_slot = $17,
			end_slot = $18, updated_at = $19
	`
	_, err := r.pool.Exec(ctx, query,
		pool.Key, pool.Owner, pool.PoolID, pool.StakeMint, pool.RewardMint,
		pool.StakeDecimals, pool.RewardDecimals, pool.StakeFeeBps, pool.UnstakeFeeBps,
		pool.StakeVault, pool.RewardVault,
		pool.TotalStaked, pool.RewardAmount, pool.RewardPerSlot, pool.AccRewardPerShare,
		pool.LastUpdateSlot, pool.StartSlot, pool.EndSlot,
		pool.UpdatedAt, pool.CreatedAt,
	)
	return err
}

func scanPool(row pgx.Row) (*store.PoolModel, error) {
	var m store.PoolModel
	err := row.Scan(
		&m.Key, &m.Owner, &m.PoolID, &m.StakeMint, &m.RewardMint,
		&m.StakeDecimals, &m.RewardDecimals, &m.StakeFeeBps, &m.UnstakeFeeBps,
		&m.StakeVault, &m.RewardVault,
		&m.TotalStaked, &m.RewardAmount, &m.RewardPerSlot, &m.AccRewardPerShare,
		&m.LastUpdateSlot, &m.StartSlot, &m.EndSlot,
		&m.UpdatedAt, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *poolRepository) FindByKey(ctx context.Context, key string) (*store.PoolModel, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE key = $1`
	return scanPool(r.pool.QueryRow(ctx, query, key))
}

func (r *poolRepository) FindByOwner(ctx context.Context, owner string, limit, offset int) ([]*store.PoolModel, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE owner = $1 ORDER BY key LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, owner, normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPools(rows)
}

func (r *poolRepository) FindAll(ctx context.Context, limit, offset int) ([]*store.PoolModel, error) {
	query := `SELECT ` + poolColumns + ` FROM pools ORDER BY key LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPools(rows)
}

func collectPools(rows pgx.Rows) ([]*store.PoolModel, error) {
	var out []*store.PoolModel
	for rows.Next() {
		m, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type positionRepository struct {
	pool *pgxpool.Pool
}

const positionColumns = `key, pool, owner, staked_amount, reward_debt, deposit_slot, updated_at, created_at`

func (r *positionRepository) Save(ctx context.Context, position *store.PositionModel) error {
	query := `
		INSERT INTO positions (` + positionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (key) DO UPDATE SET
			staked_amount = $4, reward_debt = $5, deposit_slot = $6, updated_at = $7
	`
	_, err := r.pool.Exec(ctx, query,
		position.Key, position.Pool, position.Owner,
		position.StakedAmount, position.RewardDebt, position.DepositSlot,
		position.UpdatedAt, position.CreatedAt,
	)
	return err
}

func scanPosition(row pgx.Row) (*store.PositionModel, error) {
	var m store.PositionModel
	err := row.Scan(
		&m.Key, &m.Pool, &m.Owner,
		&m.StakedAmount, &m.RewardDebt, &m.DepositSlot,
		&m.UpdatedAt, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *positionRepository) FindByKey(ctx context.Context, key string) (*store.PositionModel, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE key = $1`
	return scanPosition(r.pool.QueryRow(ctx, query, key))
}

func (r *positionRepository) FindByPool(ctx context.Context, pool string, limit, offset int) ([]*store.PositionModel, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE pool = $1 ORDER BY key LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, pool, normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*store.PositionModel
	for rows.Next() {
		m, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 1000
	}
	return limit
}
