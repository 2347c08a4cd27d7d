package engine

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/errors"
	"github.com/lugondev/go-brewstake/internal/events"
	"github.com/lugondev/go-brewstake/internal/ledger"
	"github.com/lugondev/go-brewstake/internal/metrics"
	"github.com/lugondev/go-brewstake/internal/staking"
	"github.com/lugondev/go-brewstake/internal/store"
)

// InitializePlatform writes the platform registry: treasury address and the
// global fee schedule. Calling it again acts as the admin update; pools
// snapshot their fees at creation, so existing pools are unaffected.
func (e *Engine) InitializePlatform(ctx context.Context, treasury solana.PublicKey, deployFee uint64, stakeFeeBps, unstakeFeeBps uint16) (*staking.Platform, error) {
	if err := staking.ValidateFeeBps(stakeFeeBps); err != nil {
		return nil, err
	}
	if err := staking.ValidateFeeBps(unstakeFeeBps); err != nil {
		return nil, err
	}

	platform := &staking.Platform{
		Treasury:      treasury,
		DeployFee:     deployFee,
		StakeFeeBps:   stakeFeeBps,
		UnstakeFeeBps: unstakeFeeBps,
	}

	now := time.Now().UTC()
	model := store.NewPlatformModel(platform, now)
	if existing, err := e.store.Platform().Get(ctx); err == nil {
		model.CreatedAt = existing.CreatedAt
	}
	if err := e.store.Platform().Save(ctx, model); err != nil {
		return nil, errors.StoreFailed("save platform", err)
	}

	e.emit(ctx, &events.Event{Type: events.TypePlatformInitiated, User: treasury.String()})
	e.logger.InfoContext(ctx, "platform initialized",
		"treasury", treasury.String(),
		"deploy_fee", deployFee,
		"stake_fee_bps", stakeFeeBps,
		"unstake_fee_bps", unstakeFeeBps,
	)
	return platform, nil
}

// CreatePoolParams describes a pool to create.
type CreatePoolParams struct {
	Creator        solana.PublicKey
	PoolID         string
	StakeMint      solana.PublicKey
	RewardMint     solana.PublicKey
	StakeDecimals  uint8
	RewardDecimals uint8
	RewardPerSlot  uint64
	InitialFunding uint64
}

// CreatePool derives the pool records, charges the deploy fee, moves the
// initial reward funding into the pool reward vault, and snapshots the
// registry fee schedule into the pool config. The emission window stays
// unset until StartReward.
func (e *Engine) CreatePool(ctx context.Context, params CreatePoolParams) (*Pool, error) {
	platform, err := e.loadPlatform(ctx)
	if err != nil {
		return nil, err
	}
	if err := staking.ValidatePoolID(params.PoolID); err != nil {
		return nil, err
	}
	if params.InitialFunding == 0 || params.RewardPerSlot == 0 {
		return nil, errors.ErrInvalidAmount
	}

	key, err := staking.PoolKey(e.programID, params.Creator, params.PoolID)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.Pools().FindByKey(ctx, key.String()); err == nil {
		return nil, errors.ErrPoolExists
	} else if err != store.ErrNotFound {
		return nil, errors.StoreFailed("find pool", err)
	}

	stakeVault, err := staking.StakeVaultKey(e.programID, key)
	if err != nil {
		return nil, err
	}
	rewardVault, err := staking.RewardVaultKey(e.programID, key)
	if err != nil {
		return nil, err
	}
	creatorRewardVault, err := userVault(params.Creator, params.RewardMint)
	if err != nil {
		return nil, err
	}

	transfers := []ledger.Transfer{
		{Mint: params.RewardMint, From: creatorRewardVault, To: rewardVault, Amount: params.InitialFunding},
	}
	if platform.DeployFee > 0 {
		treasuryVault, err := staking.TreasuryVaultKey(platform.Treasury, params.RewardMint)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, ledger.Transfer{
			Mint: params.RewardMint, From: creatorRewardVault, To: treasuryVault, Amount: platform.DeployFee,
		})
	}
	if err := e.ledger.Apply(ctx, transfers); err != nil {
		return nil, err
	}

	cfg := &staking.PoolConfig{
		Owner:          params.Creator,
		PoolID:         params.PoolID,
		StakeMint:      params.StakeMint,
		RewardMint:     params.RewardMint,
		StakeDecimals:  params.StakeDecimals,
		RewardDecimals: params.RewardDecimals,
		StakeFeeBps:    platform.StakeFeeBps,
		UnstakeFeeBps:  platform.UnstakeFeeBps,
		StakeVault:     stakeVault,
		RewardVault:    rewardVault,
	}
	state := &staking.PoolState{
		RewardAmount:  params.InitialFunding,
		RewardPerSlot: params.RewardPerSlot,
	}

	model := store.NewPoolModel(key, cfg, state, time.Now().UTC())
	if err := e.store.Pools().Save(ctx, model); err != nil {
		return nil, errors.StoreFailed("save pool", err)
	}

	e.count(ctx, metrics.CounterPoolsCreated, 1)
	e.emit(ctx, &events.Event{
		Type:   events.TypePoolCreated,
		Pool:   key.String(),
		User:   params.Creator.String(),
		Amount: params.InitialFunding,
		Fee:    platform.DeployFee,
	})
	e.logger.InfoContext(ctx, "pool created",
		"pool", key.String(),
		"pool_id", params.PoolID,
		"funding", params.InitialFunding,
		"reward_per_slot", params.RewardPerSlot,
	)
	return &Pool{Key: key, Config: *cfg, State: *state}, nil
}

// StartReward fixes the emission window. Owner-only, callable once.
func (e *Engine) StartReward(ctx context.Context, caller, pool solana.PublicKey, duration uint64) (*Pool, error) {
	model, cfg, state, err := e.loadPool(ctx, pool)
	if err != nil {
		return nil, err
	}
	if !caller.Equals(cfg.Owner) {
		return nil, errors.ErrUnauthorized
	}
	if state.Started() {
		return nil, errors.ErrPoolAlreadyStarted
	}
	if duration == 0 {
		return nil, errors.ErrInvalidDuration
	}

	now, err := e.clock.CurrentSlot(ctx)
	if err != nil {
		return nil, err
	}
	end, err := staking.CheckedAdd(now, duration)
	if err != nil {
		return nil, err
	}

	state.StartSlot = now
	state.EndSlot = end
	state.LastUpdateSlot = now

	model.ApplyState(state, time.Now().UTC())
	if err := e.store.Pools().Save(ctx, model); err != nil {
		return nil, errors.StoreFailed("save pool", err)
	}

	e.emit(ctx, &events.Event{
		Type:      events.TypePoolStarted,
		Pool:      pool.String(),
		Slot:      now,
		StartSlot: now,
		EndSlot:   end,
	})
	e.logger.InfoContext(ctx, "pool started",
		"pool", pool.String(),
		"start_slot", now,
		"end_slot", end,
	)
	return &Pool{Key: pool, Config: *cfg, State: *state}, nil
}

// Stake deposits tokens into a pool. Any reward already accrued to the
// position is paid out first, so the new deposit cannot dilute it.
func (e *Engine) Stake(ctx context.Context, user, pool solana.PublicKey, amount uint64) (*Position, error) {
	if amount == 0 {
		return nil, errors.ErrInvalidAmount
	}

	op, err := e.beginUserOp(ctx, user, pool)
	if err != nil {
		return nil, err
	}

	pending, err := op.settlePending(ctx)
	if err != nil {
		return nil, err
	}

	net, fee := staking.ApplyFee(amount, op.cfg.StakeFeeBps)

	userStakeVault, err := userVault(user, op.cfg.StakeMint)
	if err != nil {
		return nil, err
	}
	op.transfer(op.cfg.StakeMint, userStakeVault, op.cfg.StakeVault, net)
	if fee > 0 {
		treasuryVault, err := staking.TreasuryVaultKey(op.platform.Treasury, op.cfg.StakeMint)
		if err != nil {
			return nil, err
		}
		op.transfer(op.cfg.StakeMint, userStakeVault, treasuryVault, fee)
	}

	if err := op.grow(net); err != nil {
		return nil, err
	}
	op.user.DepositSlot = op.now

	if err := op.commit(ctx); err != nil {
		return nil, err
	}

	e.count(ctx, metrics.CounterStakeOps, 1)
	e.count(ctx, metrics.CounterFeesCollected, fee)
	e.gauges(ctx, op.state)
	e.emit(ctx, &events.Event{
		Type:   events.TypeStaked,
		Pool:   pool.String(),
		User:   user.String(),
		Amount: net,
		Fee:    fee,
		Slot:   op.now,
	})
	if pending > 0 {
		e.emit(ctx, &events.Event{
			Type:   events.TypeRewardClaimed,
			Pool:   pool.String(),
			User:   user.String(),
			Amount: pending,
			Slot:   op.now,
		})
	}
	return op.position(), nil
}

// Unstake withdraws part or all of a position. The unstake fee is charged on
// the gross withdrawal; the net principal returns to the user.
func (e *Engine) Unstake(ctx context.Context, user, pool solana.PublicKey, amount uint64) (*Position, error) {
	if amount == 0 {
		return nil, errors.ErrInvalidAmount
	}

	op, err := e.beginUserOp(ctx, user, pool)
	if err != nil {
		return nil, err
	}
	if !op.exists {
		return nil, errors.ErrPositionNotFound
	}
	if amount > op.user.StakedAmount {
		return nil, errors.ErrInsufficientStake
	}

	pending, err := op.settlePending(ctx)
	if err != nil {
		return nil, err
	}

	stakeVaultBalance, err := e.ledger.BalanceOf(ctx, op.cfg.StakeVault)
	if err != nil {
		return nil, err
	}
	if stakeVaultBalance < amount {
		return nil, errors.ErrInsufficientVaultBalance
	}

	net, fee := staking.ApplyFee(amount, op.cfg.UnstakeFeeBps)

	userStakeVault, err := userVault(user, op.cfg.StakeMint)
	if err != nil {
		return nil, err
	}
	op.transfer(op.cfg.StakeMint, op.cfg.StakeVault, userStakeVault, net)
	if fee > 0 {
		treasuryVault, err := staking.TreasuryVaultKey(op.platform.Treasury, op.cfg.StakeMint)
		if err != nil {
			return nil, err
		}
		op.transfer(op.cfg.StakeMint, op.cfg.StakeVault, treasuryVault, fee)
	}

	if err := op.shrink(amount); err != nil {
		return nil, err
	}

	if err := op.commit(ctx); err != nil {
		return nil, err
	}

	e.count(ctx, metrics.CounterUnstakeOps, 1)
	e.count(ctx, metrics.CounterFeesCollected, fee)
	e.gauges(ctx, op.state)
	e.emit(ctx, &events.Event{
		Type:   events.TypeUnstaked,
		Pool:   pool.String(),
		User:   user.String(),
		Amount: amount,
		Fee:    fee,
		Slot:   op.now,
	})
	if pending > 0 {
		e.emit(ctx, &events.Event{
			Type:   events.TypeRewardClaimed,
			Pool:   pool.String(),
			User:   user.String(),
			Amount: pending,
			Slot:   op.now,
		})
	}
	return op.position(), nil
}

// ClaimReward pays out the pending reward. Fee-free; a zero pending is a
// successful no-op.
func (e *Engine) ClaimReward(ctx context.Context, user, pool solana.PublicKey) (uint64, error) {
	op, err := e.beginUserOp(ctx, user, pool)
	if err != nil {
		return 0, err
	}
	if !op.exists {
		return 0, errors.ErrPositionNotFound
	}

	pending, err := op.settlePending(ctx)
	if err != nil {
		return 0, err
	}

	if err := op.commit(ctx); err != nil {
		return 0, err
	}

	e.count(ctx, metrics.CounterClaimOps, 1)
	e.count(ctx, metrics.CounterRewardPaid, pending)
	e.gauges(ctx, op.state)
	if pending > 0 {
		e.emit(ctx, &events.Event{
			Type:   events.TypeRewardClaimed,
			Pool:   pool.String(),
			User:   user.String(),
			Amount: pending,
			Slot:   op.now,
		})
	}
	return pending, nil
}

// CompoundReward claims the pending reward and restakes it in one operation.
// Only valid on pools whose stake and reward mints agree; the stake fee
// applies to the compounded amount.
func (e *Engine) CompoundReward(ctx context.Context, user, pool solana.PublicKey) (*Position, error) {
	op, err := e.beginUserOp(ctx, user, pool)
	if err != nil {
		return nil, err
	}
	if !op.cfg.StakeMint.Equals(op.cfg.RewardMint) {
		return nil, errors.ErrMintMismatch
	}
	if !op.exists {
		return nil, errors.ErrPositionNotFound
	}

	pending, err := staking.Pending(op.user, op.state)
	if err != nil {
		return nil, err
	}
	if pending == 0 {
		if err := op.commit(ctx); err != nil {
			return nil, err
		}
		return op.position(), nil
	}

	rewardVaultBalance, err := e.ledger.BalanceOf(ctx, op.cfg.RewardVault)
	if err != nil {
		return nil, err
	}
	if rewardVaultBalance < pending {
		return nil, errors.ErrInsufficientVaultBalance
	}

	net, fee := staking.ApplyFee(pending, op.cfg.StakeFeeBps)

	op.transfer(op.cfg.StakeMint, op.cfg.RewardVault, op.cfg.StakeVault, net)
	if fee > 0 {
		treasuryVault, err := staking.TreasuryVaultKey(op.platform.Treasury, op.cfg.StakeMint)
		if err != nil {
			return nil, err
		}
		op.transfer(op.cfg.StakeMint, op.cfg.RewardVault, treasuryVault, fee)
	}

	if err := op.grow(net); err != nil {
		return nil, err
	}
	op.user.DepositSlot = op.now

	if err := op.commit(ctx); err != nil {
		return nil, err
	}

	e.count(ctx, metrics.CounterCompoundOps, 1)
	e.count(ctx, metrics.CounterRewardPaid, pending)
	e.count(ctx, metrics.CounterFeesCollected, fee)
	e.gauges(ctx, op.state)
	e.emit(ctx, &events.Event{
		Type:   events.TypeRewardCompounded,
		Pool:   pool.String(),
		User:   user.String(),
		Amount: net,
		Fee:    fee,
		Slot:   op.now,
	})
	return op.position(), nil
}

func (e *Engine) count(ctx context.Context, name string, value uint64) {
	if value == 0 {
		return
	}
	_ = e.metrics.IncrementCounter(ctx, name, value)
}

func (e *Engine) gauges(ctx context.Context, state *staking.PoolState) {
	_ = e.metrics.UpdateGauge(ctx, metrics.GaugePoolTotalStaked, float64(state.TotalStaked))
	_ = e.metrics.UpdateGauge(ctx, metrics.GaugePoolRewardBudget, float64(state.RewardAmount))
}
