package staking

import (
	"math"
	"testing"

	"github.com/lugondev/go-brewstake/internal/errors"
)

func TestApplyFee(t *testing.T) {
	tests := []struct {
		amount  uint64
		feeBps  uint16
		wantNet uint64
		wantFee uint64
	}{
		{0, 200, 0, 0},
		{5_000_000, 200, 4_900_000, 100_000},
		{5_000_000, 0, 5_000_000, 0},
		{5_000_000, 10_000, 0, 5_000_000},
		{1, 9_999, 1, 0},     // floors to zero
		{10_001, 1, 10_000, 1},
		{3, 5_000, 2, 1},
		{math.MaxUint64, 10_000, 0, math.MaxUint64},
		{math.MaxUint64, 1, math.MaxUint64 - math.MaxUint64/10_000, math.MaxUint64 / 10_000},
	}

	for _, tt := range tests {
		net, fee := ApplyFee(tt.amount, tt.feeBps)
		if net != tt.wantNet || fee != tt.wantFee {
			t.Errorf("ApplyFee(%d, %d) = (%d, %d); want (%d, %d)",
				tt.amount, tt.feeBps, net, fee, tt.wantNet, tt.wantFee)
		}
		if net+fee != tt.amount {
			t.Errorf("ApplyFee(%d, %d): net+fee = %d; want %d", tt.amount, tt.feeBps, net+fee, tt.amount)
		}
	}
}

func TestValidateFeeBps(t *testing.T) {
	if err := ValidateFeeBps(10_000); err != nil {
		t.Errorf("ValidateFeeBps(10000) error = %v", err)
	}
	if err := ValidateFeeBps(10_001); !errors.Is(err, errors.ErrInvalidFee) {
		t.Errorf("ValidateFeeBps(10001) error = %v; want InvalidFee", err)
	}
}
