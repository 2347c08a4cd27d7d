package staking

// UpdateAccrual advances the pool accumulator to currentSlot, clamped at the
// pool's end slot. Reward is emitted only while at least one token is staked;
// an idle pool just moves its last-update marker forward so later deposits do
// not retroactively earn the skipped range. Emission is capped at the reward
// still funded, so the pool can never promise more than its vault holds.
//
// Every mutating operation must run this before touching balances. Growing or
// shrinking TotalStaked after the update cannot change past accrual.
func UpdateAccrual(s *PoolState, currentSlot uint64) error {
	effective := currentSlot
	if s.EndSlot != 0 && effective > s.EndSlot {
		effective = s.EndSlot
	}

	if effective <= s.LastUpdateSlot || s.TotalStaked == 0 {
		if effective > s.LastUpdateSlot {
			s.LastUpdateSlot = effective
		}
		return nil
	}

	elapsed := effective - s.LastUpdateSlot
	emitted := mulCapped(elapsed, s.RewardPerSlot, s.RewardAmount)

	delta, err := mulDiv(emitted, Precision, s.TotalStaked)
	if err != nil {
		return err
	}
	acc, err := CheckedAdd(s.AccRewardPerShare, delta)
	if err != nil {
		return err
	}

	s.AccRewardPerShare = acc
	s.RewardAmount -= emitted
	s.LastUpdateSlot = effective
	return nil
}

// DebtFor computes the reward-debt baseline for a position of the given size
// against the current accumulator: staked * acc / Precision.
func DebtFor(staked, accRewardPerShare uint64) (uint64, error) {
	return mulDiv(staked, accRewardPerShare, Precision)
}

// Pending computes the reward accrued to the user since its last settlement:
// staked * acc / Precision - reward_debt. A negative intermediate is not
// reachable through the public operations; it is reported as an overflow so a
// settlement-ordering defect surfaces instead of paying out a wrapped value.
func Pending(u *UserInfo, s *PoolState) (uint64, error) {
	earned, err := DebtFor(u.StakedAmount, s.AccRewardPerShare)
	if err != nil {
		return 0, err
	}
	return CheckedSub(earned, u.RewardDebt)
}
