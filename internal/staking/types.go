// Package staking defines the record types and pure arithmetic of the
// brewstake reward engine.
//
// The package has no I/O: it owns the platform registry, pool and position
// record shapes, the fixed-point accrual accumulator, and the basis-point fee
// policy. All token movement and persistence happens in the engine package
// through the ledger and store interfaces.
package staking

import (
	"github.com/gagliardetto/solana-go"
)

// Precision scales the reward-per-share accumulator so that integer division
// by total stake retains fractional precision.
const Precision uint64 = 1_000_000_000_000

// MaxFeeBps is the upper bound for basis-point fee rates (100%).
const MaxFeeBps uint16 = 10_000

// MaxPoolIDLen bounds the pool id string used as a key-derivation seed.
const MaxPoolIDLen = 32

// PoolStatus describes where a pool sits in its lifecycle.
type PoolStatus uint8

const (
	// PoolCreated means the config exists but no reward funding arrived yet.
	PoolCreated PoolStatus = iota

	// PoolFunded means the reward vault is funded but emission has not started.
	PoolFunded

	// PoolActive means start_reward fixed the slot window and emission runs.
	PoolActive

	// PoolExpired means the current slot passed end_slot; emission stopped but
	// claim and unstake remain valid.
	PoolExpired
)

// String implements fmt.Stringer.
func (s PoolStatus) String() string {
	switch s {
	case PoolCreated:
		return "created"
	case PoolFunded:
		return "funded"
	case PoolActive:
		return "active"
	case PoolExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Platform is the deployment-wide registry: treasury address and the global
// fee schedule snapshotted into every pool at creation time.
type Platform struct {
	Treasury      solana.PublicKey
	DeployFee     uint64
	StakeFeeBps   uint16
	UnstakeFeeBps uint16
}

// PoolConfig is the immutable per-pool configuration, written once by
// create_pool and never mutated afterwards. Fees are fixed per pool at
// creation so later registry changes cannot affect already-staked funds.
type PoolConfig struct {
	Owner          solana.PublicKey
	PoolID         string
	StakeMint      solana.PublicKey
	RewardMint     solana.PublicKey
	StakeDecimals  uint8
	RewardDecimals uint8
	StakeFeeBps    uint16
	UnstakeFeeBps  uint16
	StakeVault     solana.PublicKey
	RewardVault    solana.PublicKey
}

// PoolState is the mutable per-pool accounting record. Every state-changing
// operation advances the accumulator first via UpdateAccrual.
type PoolState struct {
	TotalStaked       uint64
	RewardAmount      uint64
	RewardPerSlot     uint64
	AccRewardPerShare uint64
	LastUpdateSlot    uint64
	StartSlot         uint64
	EndSlot           uint64
}

// Status reports the lifecycle phase of the pool at the given slot.
func (s *PoolState) Status(currentSlot uint64) PoolStatus {
	switch {
	case s.StartSlot == 0 && s.RewardAmount == 0:
		return PoolCreated
	case s.StartSlot == 0:
		return PoolFunded
	case currentSlot >= s.EndSlot:
		return PoolExpired
	default:
		return PoolActive
	}
}

// Started reports whether start_reward has fixed the emission window.
func (s *PoolState) Started() bool {
	return s.StartSlot != 0
}

// UserInfo is the lazily created per-(pool, staker) position record.
// RewardDebt always reflects a settlement boundary: pending reward is
// staked_amount * acc_reward_per_share / Precision - reward_debt.
type UserInfo struct {
	StakedAmount uint64
	RewardDebt   uint64
	DepositSlot  uint64
}
