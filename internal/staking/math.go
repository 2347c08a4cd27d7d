package staking

import (
	"math"
	"math/big"

	"github.com/lugondev/go-brewstake/internal/errors"
)

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// mulDiv computes floor(a * b / div) with a 128-bit-wide intermediate product,
// so the multiplication never silently wraps before the division brings the
// result back into range.
func mulDiv(a, b, div uint64) (uint64, error) {
	if div == 0 {
		return 0, errors.ErrArithmeticOverflow.WithDetails(map[string]any{"op": "div0"})
	}
	p := new(big.Int).SetUint64(a)
	p.Mul(p, new(big.Int).SetUint64(b))
	p.Quo(p, new(big.Int).SetUint64(div))
	if p.Cmp(maxUint64) > 0 {
		return 0, errors.ErrArithmeticOverflow
	}
	return p.Uint64(), nil
}

// mulCapped computes min(a * b, cap) without overflowing the product.
func mulCapped(a, b, cap uint64) uint64 {
	p := new(big.Int).SetUint64(a)
	p.Mul(p, new(big.Int).SetUint64(b))
	c := new(big.Int).SetUint64(cap)
	if p.Cmp(c) > 0 {
		return cap
	}
	return p.Uint64()
}

// CheckedAdd returns a + b or an overflow error.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.ErrArithmeticOverflow
	}
	return sum, nil
}

// CheckedSub returns a - b or an overflow error if b > a.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.ErrArithmeticOverflow
	}
	return a - b, nil
}
