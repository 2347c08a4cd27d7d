package ledger

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/errors"
)

func TestMemoryApply(t *testing.T) {
	ctx := context.Background()
	mint := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()
	c := solana.NewWallet().PublicKey()

	m := NewMemory()
	m.Fund(a, mint, 1_000)

	err := m.Apply(ctx, []Transfer{
		{Mint: mint, From: a, To: b, Amount: 600},
		{Mint: mint, From: b, To: c, Amount: 100},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	for _, tc := range []struct {
		account solana.PublicKey
		want    uint64
	}{{a, 400}, {b, 500}, {c, 100}} {
		got, err := m.BalanceOf(ctx, tc.account)
		if err != nil {
			t.Fatalf("BalanceOf() error = %v", err)
		}
		if got != tc.want {
			t.Errorf("BalanceOf(%s) = %d; want %d", tc.account, got, tc.want)
		}
	}
}

func TestMemoryApplyAllOrNothing(t *testing.T) {
	ctx := context.Background()
	mint := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	m := NewMemory()
	m.Fund(a, mint, 100)

	// Second transfer overdraws; the first must not stick.
	err := m.Apply(ctx, []Transfer{
		{Mint: mint, From: a, To: b, Amount: 50},
		{Mint: mint, From: a, To: b, Amount: 100},
	})
	if !errors.Is(err, errors.ErrInsufficientVaultBalance) {
		t.Fatalf("Apply() error = %v; want InsufficientVaultBalance", err)
	}

	got, _ := m.BalanceOf(ctx, a)
	if got != 100 {
		t.Errorf("BalanceOf(a) = %d after failed batch; want 100", got)
	}
	got, _ = m.BalanceOf(ctx, b)
	if got != 0 {
		t.Errorf("BalanceOf(b) = %d after failed batch; want 0", got)
	}
}

func TestMemoryApplyFailedBatchCreatesNoAccounts(t *testing.T) {
	ctx := context.Background()
	mintX := solana.NewWallet().PublicKey()
	mintY := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()
	c := solana.NewWallet().PublicKey()

	m := NewMemory()
	m.Fund(a, mintX, 100)
	m.Fund(c, mintY, 100)

	// Overdraw into a destination the ledger has never seen.
	err := m.Apply(ctx, []Transfer{{Mint: mintX, From: a, To: b, Amount: 200}})
	if !errors.Is(err, errors.ErrInsufficientVaultBalance) {
		t.Fatalf("Apply() error = %v; want InsufficientVaultBalance", err)
	}

	// The failed batch must not have created b with a mintX binding, so b can
	// still receive a different mint.
	if err := m.Apply(ctx, []Transfer{{Mint: mintY, From: c, To: b, Amount: 50}}); err != nil {
		t.Fatalf("Apply() after failed batch error = %v", err)
	}
	got, _ := m.BalanceOf(ctx, b)
	if got != 50 {
		t.Errorf("BalanceOf(b) = %d; want 50", got)
	}
}

func TestMemoryApplyMintMismatch(t *testing.T) {
	ctx := context.Background()
	mintX := solana.NewWallet().PublicKey()
	mintY := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	m := NewMemory()
	m.Fund(a, mintX, 100)

	err := m.Apply(ctx, []Transfer{{Mint: mintY, From: a, To: b, Amount: 10}})
	if err == nil {
		t.Fatal("Apply() with wrong mint succeeded; want error")
	}
}

func TestMemoryZeroAmountSkipped(t *testing.T) {
	ctx := context.Background()
	mint := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	m := NewMemory()
	if err := m.Apply(ctx, []Transfer{{Mint: mint, From: a, To: b, Amount: 0}}); err != nil {
		t.Fatalf("Apply() zero amount error = %v", err)
	}
}
