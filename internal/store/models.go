package store

import (
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/staking"
)

// PlatformModel is the stored platform registry. One row per deployment.
type PlatformModel struct {
	ID            string    `json:"id" bson:"_id" db:"id"`
	Treasury      string    `json:"treasury" bson:"treasury" db:"treasury"`
	DeployFee     uint64    `json:"deploy_fee" bson:"deploy_fee" db:"deploy_fee"`
	StakeFeeBps   uint16    `json:"stake_fee_bps" bson:"stake_fee_bps" db:"stake_fee_bps"`
	UnstakeFeeBps uint16    `json:"unstake_fee_bps" bson:"unstake_fee_bps" db:"unstake_fee_bps"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// PlatformID keys the singleton platform row.
const PlatformID = "platform"

// PoolModel stores a pool's immutable config and mutable state in one row;
// the pair is created together and one-to-one.
type PoolModel struct {
	Key               string    `json:"key" bson:"_id" db:"key"`
	Owner             string    `json:"owner" bson:"owner" db:"owner"`
	PoolID            string    `json:"pool_id" bson:"pool_id" db:"pool_id"`
	StakeMint         string    `json:"stake_mint" bson:"stake_mint" db:"stake_mint"`
	RewardMint        string    `json:"reward_mint" bson:"reward_mint" db:"reward_mint"`
	StakeDecimals     uint8     `json:"stake_decimals" bson:"stake_decimals" db:"stake_decimals"`
	RewardDecimals    uint8     `json:"reward_decimals" bson:"reward_decimals" db:"reward_decimals"`
	StakeFeeBps       uint16    `json:"stake_fee_bps" bson:"stake_fee_bps" db:"stake_fee_bps"`
	UnstakeFeeBps     uint16    `json:"unstake_fee_bps" bson:"unstake_fee_bps" db:"unstake_fee_bps"`
	StakeVault        string    `json:"stake_vault" bson:"stake_vault" db:"stake_vault"`
	RewardVault       string    `json:"reward_vault" bson:"reward_vault" db:"reward_vault"`
	TotalStaked       uint64    `json:"total_staked" bson:"total_staked" db:"total_staked"`
	RewardAmount      uint64    `json:"reward_amount" bson:"reward_amount" db:"reward_amount"`
	RewardPerSlot     uint64    `json:"reward_per_slot" bson:"reward_per_slot" db:"reward_per_slot"`
	AccRewardPerShare uint64    `json:"acc_reward_per_share" bson:"acc_reward_per_share" db:"acc_reward_per_share"`
	LastUpdateSlot    uint64    `json:"last_update_slot" bson:"last_update_slot" db:"last_update_slot"`
	StartSlot         uint64    `json:"start_slot" bson:"start_slot" db:"start_slot"`
	EndSlot           uint64    `json:"end_slot" bson:"end_slot" db:"end_slot"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// PositionModel stores one (pool, staker) position.
type PositionModel struct {
	Key          string    `json:"key" bson:"_id" db:"key"`
	Pool         string    `json:"pool" bson:"pool" db:"pool"`
	Owner        string    `json:"owner" bson:"owner" db:"owner"`
	StakedAmount uint64    `json:"staked_amount" bson:"staked_amount" db:"staked_amount"`
	RewardDebt   uint64    `json:"reward_debt" bson:"reward_debt" db:"reward_debt"`
	DepositSlot  uint64    `json:"deposit_slot" bson:"deposit_slot" db:"deposit_slot"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// Platform converts the stored row into the domain record.
func (m *PlatformModel) Platform() (*staking.Platform, error) {
	treasury, err := solana.PublicKeyFromBase58(m.Treasury)
	if err != nil {
		return nil, err
	}
	return &staking.Platform{
		Treasury:      treasury,
		DeployFee:     m.DeployFee,
		StakeFeeBps:   m.StakeFeeBps,
		UnstakeFeeBps: m.UnstakeFeeBps,
	}, nil
}

// NewPlatformModel builds the singleton row from the domain record.
func NewPlatformModel(p *staking.Platform, now time.Time) *PlatformModel {
	return &PlatformModel{
		ID:            PlatformID,
		Treasury:      p.Treasury.String(),
		DeployFee:     p.DeployFee,
		StakeFeeBps:   p.StakeFeeBps,
		UnstakeFeeBps: p.UnstakeFeeBps,
		UpdatedAt:     now,
		CreatedAt:     now,
	}
}

// Config converts the stored row into the immutable pool configuration.
func (m *PoolModel) Config() (*staking.PoolConfig, error) {
	owner, err := solana.PublicKeyFromBase58(m.Owner)
	if err != nil {
		return nil, err
	}
	stakeMint, err := solana.PublicKeyFromBase58(m.StakeMint)
	if err != nil {
		return nil, err
	}
	rewardMint, err := solana.PublicKeyFromBase58(m.RewardMint)
	if err != nil {
		return nil, err
	}
	stakeVault, err := solana.PublicKeyFromBase58(m.StakeVault)
	if err != nil {
		return nil, err
	}
	rewardVault, err := solana.PublicKeyFromBase58(m.RewardVault)
	if err != nil {
		return nil, err
	}
	return &staking.PoolConfig{
		Owner:          owner,
		PoolID:         m.PoolID,
		StakeMint:      stakeMint,
		RewardMint:     rewardMint,
		StakeDecimals:  m.StakeDecimals,
		RewardDecimals: m.RewardDecimals,
		StakeFeeBps:    m.StakeFeeBps,
		UnstakeFeeBps:  m.UnstakeFeeBps,
		StakeVault:     stakeVault,
		RewardVault:    rewardVault,
	}, nil
}

// State converts the stored row into the mutable pool state.
func (m *PoolModel) State() *staking.PoolState {
	return &staking.PoolState{
		TotalStaked:       m.TotalStaked,
		RewardAmount:      m.RewardAmount,
		RewardPerSlot:     m.RewardPerSlot,
		AccRewardPerShare: m.AccRewardPerShare,
		LastUpdateSlot:    m.LastUpdateSlot,
		StartSlot:         m.StartSlot,
		EndSlot:           m.EndSlot,
	}
}

// ApplyState writes the mutable pool state back into the row.
func (m *PoolModel) ApplyState(s *staking.PoolState, now time.Time) {
	m.TotalStaked = s.TotalStaked
	m.RewardAmount = s.RewardAmount
	m.RewardPerSlot = s.RewardPerSlot
	m.AccRewardPerShare = s.AccRewardPerShare
	m.LastUpdateSlot = s.LastUpdateSlot
	m.StartSlot = s.StartSlot
	m.EndSlot = s.EndSlot
	m.UpdatedAt = now
}

// NewPoolModel builds a row from a freshly created pool.
func NewPoolModel(key solana.PublicKey, cfg *staking.PoolConfig, s *staking.PoolState, now time.Time) *PoolModel {
	m := &PoolModel{
		Key:            key.String(),
		Owner:          cfg.Owner.String(),
		PoolID:         cfg.PoolID,
		StakeMint:      cfg.StakeMint.String(),
		RewardMint:     cfg.RewardMint.String(),
		StakeDecimals:  cfg.StakeDecimals,
		RewardDecimals: cfg.RewardDecimals,
		StakeFeeBps:    cfg.StakeFeeBps,
		UnstakeFeeBps:  cfg.UnstakeFeeBps,
		StakeVault:     cfg.StakeVault.String(),
		RewardVault:    cfg.RewardVault.String(),
		CreatedAt:      now,
	}
	m.ApplyState(s, now)
	return m
}

// UserInfo converts the stored row into the domain position record.
func (m *PositionModel) UserInfo() *staking.UserInfo {
	return &staking.UserInfo{
		StakedAmount: m.StakedAmount,
		RewardDebt:   m.RewardDebt,
		DepositSlot:  m.DepositSlot,
	}
}

// ApplyUserInfo writes the position back into the row.
func (m *PositionModel) ApplyUserInfo(u *staking.UserInfo, now time.Time) {
	m.StakedAmount = u.StakedAmount
	m.RewardDebt = u.RewardDebt
	m.DepositSlot = u.DepositSlot
	m.UpdatedAt = now
}

// NewPositionModel builds a row for a lazily created position.
func NewPositionModel(key, pool, owner solana.PublicKey, u *staking.UserInfo, now time.Time) *PositionModel {
	m := &PositionModel{
		Key:       key.String(),
		Pool:      pool.String(),
		Owner:     owner.String(),
		CreatedAt: now,
	}
	m.ApplyUserInfo(u, now)
	return m
}
