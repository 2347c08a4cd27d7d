package ledger

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/errors"
)

type memoryAccount struct {
	mint    solana.PublicKey
	balance uint64
}

// Memory is an in-process Ledger used by tests and local runs. Accounts are
// created on first reference; a batch is validated in order against the
// running balances and committed only if every transfer clears.
type Memory struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*memoryAccount
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[solana.PublicKey]*memoryAccount)}
}

// Fund credits an account with tokens of the given mint. Test scaffolding for
// the external mint authority the engine never implements.
func (m *Memory) Fund(account, mint solana.PublicKey, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc := m.account(account, mint)
	acc.balance += amount
}

// account returns the record for a pubkey, creating it bound to mint.
// Callers must hold mu.
func (m *Memory) account(key, mint solana.PublicKey) *memoryAccount {
	acc, ok := m.accounts[key]
	if !ok {
		acc = &memoryAccount{mint: mint}
		m.accounts[key] = acc
	}
	return acc
}

// Apply implements Ledger. The batch is simulated against a staged view
// first; accounts are neither mutated nor created until every transfer has
// validated, so a failing batch leaves the ledger byte-for-byte unchanged.
func (m *Memory) Apply(ctx context.Context, transfers []Transfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := make(map[solana.PublicKey]*memoryAccount, len(transfers)*2)
	lookup := func(key, mint solana.PublicKey) *memoryAccount {
		if acc, ok := staged[key]; ok {
			return acc
		}
		acc := &memoryAccount{mint: mint}
		if existing, ok := m.accounts[key]; ok {
			*acc = *existing
		}
		staged[key] = acc
		return acc
	}

	for _, tr := range transfers {
		if tr.Amount == 0 {
			continue
		}
		from := lookup(tr.From, tr.Mint)
		to := lookup(tr.To, tr.Mint)
		if from.mint != tr.Mint || to.mint != tr.Mint {
			return errors.LedgerFailed("mint mismatch", nil).WithDetails(map[string]any{
				"mint": tr.Mint.String(),
			})
		}
		if from.balance < tr.Amount {
			return errors.ErrInsufficientVaultBalance.WithDetails(map[string]any{
				"account": tr.From.String(),
				"have":    from.balance,
				"need":    tr.Amount,
			})
		}
		from.balance -= tr.Amount
		to.balance += tr.Amount
	}

	for key, acc := range staged {
		m.accounts[key] = acc
	}
	return nil
}

// BalanceOf implements Ledger. Unknown accounts report zero.
func (m *Memory) BalanceOf(ctx context.Context, account solana.PublicKey) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[account]
	if !ok {
		return 0, nil
	}
	return acc.balance, nil
}
