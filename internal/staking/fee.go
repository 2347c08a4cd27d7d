package staking

import (
	"github.com/lugondev/go-brewstake/internal/errors"
)

// ApplyFee splits amount into the net and fee portions at the given
// basis-point rate. The fee floors, so it never exceeds the nominal rate and
// net + fee == amount always holds.
func ApplyFee(amount uint64, feeBps uint16) (net, fee uint64) {
	// amount * feeBps stays within 128 bits; mulDiv cannot fail here since
	// the quotient is <= amount.
	fee, _ = mulDiv(amount, uint64(feeBps), uint64(MaxFeeBps))
	return amount - fee, fee
}

// ValidateFeeBps rejects basis-point rates above 100%.
func ValidateFeeBps(bps uint16) error {
	if bps > MaxFeeBps {
		return errors.ErrInvalidFee.WithDetails(map[string]any{"bps": bps})
	}
	return nil
}
