package engine

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/errors"
	"github.com/lugondev/go-brewstake/internal/ledger"
	"github.com/lugondev/go-brewstake/internal/staking"
	"github.com/lugondev/go-brewstake/internal/store"
)

// userOp carries the loaded records and staged transfers of one user-facing
// operation. All mutations happen on in-memory copies; nothing is visible
// until commit applies the ledger batch and persists the rows.
type userOp struct {
	engine   *Engine
	platform *staking.Platform
	poolKey  solana.PublicKey
	model    *store.PoolModel
	cfg      *staking.PoolConfig
	state    *staking.PoolState
	userKey  solana.PublicKey
	posKey   solana.PublicKey
	posModel *store.PositionModel
	user     *staking.UserInfo
	exists   bool
	now      uint64

	transfers []ledger.Transfer
}

// beginUserOp loads the platform, pool and position records, rejects pools
// that have not started, and advances the accumulator to the current slot.
func (e *Engine) beginUserOp(ctx context.Context, user, pool solana.PublicKey) (*userOp, error) {
	platform, err := e.loadPlatform(ctx)
	if err != nil {
		return nil, err
	}
	model, cfg, state, err := e.loadPool(ctx, pool)
	if err != nil {
		return nil, err
	}
	if !state.Started() {
		return nil, errors.ErrPoolNotActive
	}

	now, err := e.clock.CurrentSlot(ctx)
	if err != nil {
		return nil, err
	}
	if err := staking.UpdateAccrual(state, now); err != nil {
		return nil, err
	}

	posKey, err := staking.PositionKey(e.programID, pool, user)
	if err != nil {
		return nil, err
	}
	op := &userOp{
		engine:   e,
		platform: platform,
		poolKey:  pool,
		model:    model,
		cfg:      cfg,
		state:    state,
		userKey:  user,
		posKey:   posKey,
		user:     &staking.UserInfo{},
		now:      now,
	}
	posModel, err := e.store.Positions().FindByKey(ctx, posKey.String())
	switch err {
	case nil:
		op.posModel = posModel
		op.user = posModel.UserInfo()
		op.exists = true
	case store.ErrNotFound:
	default:
		return nil, errors.StoreFailed("find position", err)
	}
	return op, nil
}

// settlePending pays the reward accrued since the last settlement out of the
// reward vault and moves the debt baseline up, so a later change to the
// position size cannot touch it. Returns the amount paid.
func (op *userOp) settlePending(ctx context.Context) (uint64, error) {
	pending, err := staking.Pending(op.user, op.state)
	if err != nil {
		return 0, err
	}
	if pending > 0 {
		balance, err := op.engine.ledger.BalanceOf(ctx, op.cfg.RewardVault)
		if err != nil {
			return 0, err
		}
		if balance < pending {
			return 0, errors.ErrInsufficientVaultBalance
		}
		dest, err := userVault(op.userKey, op.cfg.RewardMint)
		if err != nil {
			return 0, err
		}
		op.transfer(op.cfg.RewardMint, op.cfg.RewardVault, dest, pending)
	}

	debt, err := staking.DebtFor(op.user.StakedAmount, op.state.AccRewardPerShare)
	if err != nil {
		return 0, err
	}
	op.user.RewardDebt = debt
	return pending, nil
}

// grow adds net tokens to the position and the pool total, then rebases the
// debt so the enlarged position earns only from here on.
func (op *userOp) grow(net uint64) error {
	staked, err := staking.CheckedAdd(op.user.StakedAmount, net)
	if err != nil {
		return err
	}
	total, err := staking.CheckedAdd(op.state.TotalStaked, net)
	if err != nil {
		return err
	}
	debt, err := staking.DebtFor(staked, op.state.AccRewardPerShare)
	if err != nil {
		return err
	}
	op.user.StakedAmount = staked
	op.state.TotalStaked = total
	op.user.RewardDebt = debt
	return nil
}

// shrink removes gross tokens from the position and the pool total. The
// caller has already validated amount against the position.
func (op *userOp) shrink(amount uint64) error {
	staked, err := staking.CheckedSub(op.user.StakedAmount, amount)
	if err != nil {
		return err
	}
	total, err := staking.CheckedSub(op.state.TotalStaked, amount)
	if err != nil {
		return err
	}
	debt, err := staking.DebtFor(staked, op.state.AccRewardPerShare)
	if err != nil {
		return err
	}
	op.user.StakedAmount = staked
	op.state.TotalStaked = total
	op.user.RewardDebt = debt
	return nil
}

func (op *userOp) transfer(mint, from, to solana.PublicKey, amount uint64) {
	if amount == 0 {
		return
	}
	op.transfers = append(op.transfers, ledger.Transfer{Mint: mint, From: from, To: to, Amount: amount})
}

// commit applies the staged transfers as one batch and persists the updated
// pool and position rows. The ledger goes first: if it rejects the batch, no
// record changes either.
func (op *userOp) commit(ctx context.Context) error {
	if len(op.transfers) > 0 {
		if err := op.engine.ledger.Apply(ctx, op.transfers); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	op.model.ApplyState(op.state, now)
	if err := op.engine.store.Pools().Save(ctx, op.model); err != nil {
		return errors.StoreFailed("save pool", err)
	}

	if op.posModel == nil {
		op.posModel = store.NewPositionModel(op.posKey, op.poolKey, op.userKey, op.user, now)
	} else {
		op.posModel.ApplyUserInfo(op.user, now)
	}
	if err := op.engine.store.Positions().Save(ctx, op.posModel); err != nil {
		return errors.StoreFailed("save position", err)
	}
	return nil
}

func (op *userOp) position() *Position {
	return &Position{Key: op.posKey, Pool: op.poolKey, Owner: op.userKey, Info: *op.user}
}
