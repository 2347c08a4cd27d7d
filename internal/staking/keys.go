package staking

import (
	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/errors"
)

// Seed prefixes for derived record and vault addresses.
var (
	seedStakeVault  = []byte("stake_vault")
	seedRewardVault = []byte("reward_vault")
)

// ValidatePoolID checks the pool id used as a derivation seed.
func ValidatePoolID(id string) error {
	if id == "" || len(id) > MaxPoolIDLen {
		return errors.ErrInvalidPoolID.WithDetails(map[string]any{"pool_id": id})
	}
	return nil
}

// PoolKey derives the deterministic address for a pool's records from the
// pool id and the creator identity, so no separate index is needed to locate
// a pool. A collision is a configuration error, not a runtime state.
func PoolKey(programID, owner solana.PublicKey, poolID string) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(poolID), owner.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive pool key")
	}
	return addr, nil
}

// PositionKey derives the deterministic address for a (pool, staker) position.
func PositionKey(programID, pool, user solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{pool.Bytes(), user.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive position key")
	}
	return addr, nil
}

// StakeVaultKey derives the pool's stake-token vault address.
func StakeVaultKey(programID, pool solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{seedStakeVault, pool.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive stake vault key")
	}
	return addr, nil
}

// RewardVaultKey derives the pool's reward-token vault address.
func RewardVaultKey(programID, pool solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{seedRewardVault, pool.Bytes()},
		programID,
	)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive reward vault key")
	}
	return addr, nil
}

// TreasuryVaultKey resolves the treasury's token vault for a mint as its
// associated token account.
func TreasuryVaultKey(treasury, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindAssociatedTokenAddress(treasury, mint)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, "derive treasury vault key")
	}
	return addr, nil
}
