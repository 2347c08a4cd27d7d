package staking

import (
	"math"
	"testing"

	"github.com/lugondev/go-brewstake/internal/errors"
)

func TestUpdateAccrual(t *testing.T) {
	tests := []struct {
		name        string
		state       PoolState
		currentSlot uint64
		wantAcc     uint64
		wantReward  uint64
		wantLast    uint64
	}{
		{
			name: "single staker full emission",
			state: PoolState{
				TotalStaked:    1_000,
				RewardAmount:   10_000,
				RewardPerSlot:  10,
				LastUpdateSlot: 100,
				StartSlot:      100,
				EndSlot:        1_100,
			},
			currentSlot: 110,
			wantAcc:     100 * Precision / 1_000,
			wantReward:  9_900,
			wantLast:    110,
		},
		{
			name: "no stake advances marker only",
			state: PoolState{
				TotalStaked:    0,
				RewardAmount:   10_000,
				RewardPerSlot:  10,
				LastUpdateSlot: 100,
				StartSlot:      100,
				EndSlot:        1_100,
			},
			currentSlot: 150,
			wantAcc:     0,
			wantReward:  10_000,
			wantLast:    150,
		},
		{
			name: "same slot is a no-op",
			state: PoolState{
				TotalStaked:    1_000,
				RewardAmount:   10_000,
				RewardPerSlot:  10,
				LastUpdateSlot: 100,
				StartSlot:      100,
				EndSlot:        1_100,
			},
			currentSlot: 100,
			wantAcc:     0,
			wantReward:  10_000,
			wantLast:    100,
		},
		{
			name: "clamped at end slot",
			state: PoolState{
				TotalStaked:    1_000,
				RewardAmount:   10_000,
				RewardPerSlot:  10,
				LastUpdateSlot: 1_090,
				StartSlot:      100,
				EndSlot:        1_100,
			},
			currentSlot: 5_000,
			wantAcc:     100 * Precision / 1_000,
			wantReward:  9_900,
			wantLast:    1_100,
		},
		{
			name: "emission capped at remaining funding",
			state: PoolState{
				TotalStaked:    1_000,
				RewardAmount:   50,
				RewardPerSlot:  10,
				LastUpdateSlot: 100,
				StartSlot:      100,
				EndSlot:        1_100,
			},
			currentSlot: 200,
			wantAcc:     50 * Precision / 1_000,
			wantReward:  0,
			wantLast:    200,
		},
		{
			name: "rounding loss stays in the pool",
			state: PoolState{
				TotalStaked:    3,
				RewardAmount:   10,
				RewardPerSlot:  10,
				LastUpdateSlot: 100,
				StartSlot:      100,
				EndSlot:        1_100,
			},
			currentSlot: 101,
			wantAcc:     10 * Precision / 3,
			wantReward:  0,
			wantLast:    101,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.state
			if err := UpdateAccrual(&s, tt.currentSlot); err != nil {
				t.Fatalf("UpdateAccrual() error = %v", err)
			}
			if s.AccRewardPerShare != tt.wantAcc {
				t.Errorf("AccRewardPerShare = %d; want %d", s.AccRewardPerShare, tt.wantAcc)
			}
			if s.RewardAmount != tt.wantReward {
				t.Errorf("RewardAmount = %d; want %d", s.RewardAmount, tt.wantReward)
			}
			if s.LastUpdateSlot != tt.wantLast {
				t.Errorf("LastUpdateSlot = %d; want %d", s.LastUpdateSlot, tt.wantLast)
			}
		})
	}
}

func TestUpdateAccrualIdleRangeThenStake(t *testing.T) {
	s := PoolState{
		RewardAmount:   1_000_000,
		RewardPerSlot:  100,
		LastUpdateSlot: 100,
		StartSlot:      100,
		EndSlot:        10_100,
	}

	// Idle for 50 slots: nothing accrues, nothing leaks.
	if err := UpdateAccrual(&s, 150); err != nil {
		t.Fatalf("UpdateAccrual() error = %v", err)
	}
	if s.AccRewardPerShare != 0 || s.RewardAmount != 1_000_000 {
		t.Fatalf("idle range changed accrual: acc=%d reward=%d", s.AccRewardPerShare, s.RewardAmount)
	}

	// First deposit, then 10 emitting slots.
	s.TotalStaked = 500
	if err := UpdateAccrual(&s, 160); err != nil {
		t.Fatalf("UpdateAccrual() error = %v", err)
	}
	wantAcc := 1_000 * Precision / 500
	if s.AccRewardPerShare != wantAcc {
		t.Errorf("AccRewardPerShare = %d; want %d", s.AccRewardPerShare, wantAcc)
	}
	if s.RewardAmount != 999_000 {
		t.Errorf("RewardAmount = %d; want %d", s.RewardAmount, 999_000)
	}
}

func TestUpdateAccrualOverflow(t *testing.T) {
	// A single staked base unit against a huge emission pushes the
	// accumulator delta past 64 bits.
	s := PoolState{
		TotalStaked:    1,
		RewardAmount:   math.MaxUint64,
		RewardPerSlot:  math.MaxUint64,
		LastUpdateSlot: 0,
		StartSlot:      1,
		EndSlot:        math.MaxUint64,
	}
	err := UpdateAccrual(&s, 1_000)
	if !errors.Is(err, errors.ErrArithmeticOverflow) {
		t.Fatalf("UpdateAccrual() error = %v; want ArithmeticOverflow", err)
	}
	// No partial mutation on failure.
	if s.RewardAmount != math.MaxUint64 || s.LastUpdateSlot != 0 {
		t.Errorf("state mutated on overflow: %+v", s)
	}
}

func TestPending(t *testing.T) {
	s := PoolState{AccRewardPerShare: 3 * Precision}

	tests := []struct {
		name    string
		user    UserInfo
		want    uint64
		wantErr bool
	}{
		{name: "fresh settlement", user: UserInfo{StakedAmount: 100, RewardDebt: 300}, want: 0},
		{name: "accrued since settlement", user: UserInfo{StakedAmount: 100, RewardDebt: 100}, want: 200},
		{name: "empty position", user: UserInfo{}, want: 0},
		{name: "debt above earned is a defect", user: UserInfo{StakedAmount: 100, RewardDebt: 400}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pending(&tt.user, &s)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrArithmeticOverflow) {
					t.Fatalf("Pending() error = %v; want ArithmeticOverflow", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Pending() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Pending() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestAccumulatorMonotonicWhileStaked(t *testing.T) {
	s := PoolState{
		TotalStaked:    7_777,
		RewardAmount:   1_000_000_000,
		RewardPerSlot:  13,
		LastUpdateSlot: 1,
		StartSlot:      1,
		EndSlot:        1_000_000,
	}

	prev := uint64(0)
	for slot := uint64(2); slot < 2_000; slot += 17 {
		if err := UpdateAccrual(&s, slot); err != nil {
			t.Fatalf("UpdateAccrual(%d) error = %v", slot, err)
		}
		if s.AccRewardPerShare < prev {
			t.Fatalf("accumulator decreased at slot %d: %d < %d", slot, s.AccRewardPerShare, prev)
		}
		prev = s.AccRewardPerShare
	}
}
