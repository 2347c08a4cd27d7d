package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS platform (
		id TEXT PRIMARY KEY,
		treasury TEXT NOT NULL,
		deploy_fee BIGINT NOT NULL,
		stake_fee_bps INT NOT NULL,
		unstake_fee_bps INT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pools (
		key TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		pool_id TEXT NOT NULL,
		stake_mint TEXT NOT NULL,
		reward_mint TEXT NOT NULL,
		stake_decimals SMALLINT NOT NULL,
		reward_decimals SMALLINT NOT NULL,
		stake_fee_bps INT NOT NULL,
		unstake_fee_bps INT NOT NULL,
		stake_vault TEXT NOT NULL,
		reward_vault TEXT NOT NULL,
		total_staked BIGINT NOT NULL,
		reward_amount BIGINT NOT NULL,
		reward_per_slot BIGINT NOT NULL,
		acc_reward_per_share BIGINT NOT NULL,
		last_update_slot BIGINT NOT NULL,
		start_slot BIGINT NOT NULL,
		end_slot BIGINT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pools_owner ON pools(owner);

	CREATE TABLE IF NOT EXISTS positions (
		key TEXT PRIMARY KEY,
		pool TEXT NOT NULL,
		owner TEXT NOT NULL,
		staked_amount BIGINT NOT NULL,
		reward_debt BIGINT NOT NULL,
		deposit_slot BIGINT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_positions_pool ON positions(pool);
	CREATE INDEX IF NOT EXISTS idx_positions_owner ON positions(owner);
	`,
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, m := range migrations {
		if _, err := pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
