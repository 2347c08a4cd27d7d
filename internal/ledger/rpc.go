package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/lugondev/go-brewstake/internal/common"
	"github.com/lugondev/go-brewstake/internal/errors"
	solclient "github.com/lugondev/go-brewstake/internal/solana"
)

// RPC is the on-chain Ledger adapter. A batch becomes a single Solana
// transaction carrying one SPL token transfer instruction per entry, so the
// chain provides the all-or-nothing guarantee Apply promises.
type RPC struct {
	common.LoggerMixin
	client    *solclient.Client
	wallet    *solclient.Wallet
	authority solana.PublicKey
}

// NewRPC creates an on-chain ledger signing with wallet. The wallet's key is
// the transfer authority over the source token accounts it moves.
func NewRPC(client *solclient.Client, wallet *solclient.Wallet) *RPC {
	return &RPC{
		LoggerMixin: common.NewLoggerMixin(),
		client:      client,
		wallet:      wallet,
		authority:   wallet.PublicKey(),
	}
}

// Apply implements Ledger.
func (l *RPC) Apply(ctx context.Context, transfers []Transfer) error {
	instructions := make([]solana.Instruction, 0, len(transfers))
	for _, tr := range transfers {
		if tr.Amount == 0 {
			continue
		}
		ix := token.NewTransferInstruction(
			tr.Amount,
			tr.From,
			tr.To,
			l.authority,
			nil,
		).Build()
		instructions = append(instructions, ix)
	}
	if len(instructions) == 0 {
		return nil
	}

	blockhash, err := l.client.GetLatestBlockhash(ctx)
	if err != nil {
		return errors.LedgerFailed("fetch blockhash", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		blockhash.Value.Blockhash,
		solana.TransactionPayer(l.authority),
	)
	if err != nil {
		return errors.LedgerFailed("build transaction", err)
	}

	pk := l.wallet.PrivateKey()
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(l.authority) {
			return &pk
		}
		return nil
	}); err != nil {
		return errors.LedgerFailed("sign transaction", err)
	}

	sig, err := l.client.SendTransaction(ctx, tx)
	if err != nil {
		return errors.LedgerFailed("send transaction", err)
	}
	l.GetLogger().DebugContext(ctx, "transfer batch sent",
		"signature", sig.String(),
		"transfers", len(instructions),
	)
	return nil
}

// BalanceOf implements Ledger.
func (l *RPC) BalanceOf(ctx context.Context, account solana.PublicKey) (uint64, error) {
	balance, err := l.client.GetTokenBalance(ctx, account)
	if err != nil {
		return 0, errors.LedgerFailed("fetch token balance", err)
	}
	return balance, nil
}
