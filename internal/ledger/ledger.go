// Package ledger abstracts the fungible-token service the engine moves value
// through. The engine never mints or burns; it only transfers pre-existing
// tokens between accounts and reads balances.
//
// Apply is the atomicity boundary: every transfer in a batch commits or none
// does. The engine stages all token movements of one operation into a single
// batch, so a failed operation leaves no partial balance changes behind.
package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Transfer moves amount tokens of a mint between two token accounts.
type Transfer struct {
	Mint   solana.PublicKey
	From   solana.PublicKey
	To     solana.PublicKey
	Amount uint64
}

// Ledger is the fungible-token service consumed by the engine.
type Ledger interface {
	// Apply commits the batch all-or-nothing.
	Apply(ctx context.Context, transfers []Transfer) error

	// BalanceOf returns the token balance of an account.
	BalanceOf(ctx context.Context, account solana.PublicKey) (uint64, error)
}
