package codec

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-brewstake/internal/staking"
)

func TestPoolConfigRoundtrip(t *testing.T) {
	cfg := &staking.PoolConfig{
		Owner:          solana.NewWallet().PublicKey(),
		PoolID:         "pool-1",
		StakeMint:      solana.NewWallet().PublicKey(),
		RewardMint:     solana.NewWallet().PublicKey(),
		StakeDecimals:  6,
		RewardDecimals: 9,
		StakeFeeBps:    200,
		UnstakeFeeBps:  50,
		StakeVault:     solana.NewWallet().PublicKey(),
		RewardVault:    solana.NewWallet().PublicKey(),
	}

	data, err := MarshalPoolConfig(cfg)
	if err != nil {
		t.Fatalf("MarshalPoolConfig() error = %v", err)
	}
	got, err := UnmarshalPoolConfig(data)
	if err != nil {
		t.Fatalf("UnmarshalPoolConfig() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestDiscriminatorMismatch(t *testing.T) {
	state := &staking.PoolState{TotalStaked: 5, RewardAmount: 10}
	data, err := MarshalPoolState(state)
	if err != nil {
		t.Fatalf("MarshalPoolState() error = %v", err)
	}

	// A pool-state payload must not decode as a position record.
	if _, err := UnmarshalUserInfo(data); err == nil {
		t.Error("UnmarshalUserInfo() accepted a pool-state record")
	}

	if _, err := UnmarshalPoolState(data[:4]); err == nil {
		t.Error("UnmarshalPoolState() accepted a truncated record")
	}
}

func TestDecodeDispatch(t *testing.T) {
	platform := &staking.Platform{
		Treasury:      solana.NewWallet().PublicKey(),
		DeployFee:     50_000,
		StakeFeeBps:   200,
		UnstakeFeeBps: 100,
	}
	state := &staking.PoolState{TotalStaked: 7, RewardAmount: 11, RewardPerSlot: 3}
	user := &staking.UserInfo{StakedAmount: 42, RewardDebt: 5, DepositSlot: 9}

	platformData, err := MarshalPlatform(platform)
	if err != nil {
		t.Fatalf("MarshalPlatform() error = %v", err)
	}
	stateData, err := MarshalPoolState(state)
	if err != nil {
		t.Fatalf("MarshalPoolState() error = %v", err)
	}
	userData, err := MarshalUserInfo(user)
	if err != nil {
		t.Fatalf("MarshalUserInfo() error = %v", err)
	}

	got, err := Decode(platformData)
	if err != nil {
		t.Fatalf("Decode(platform) error = %v", err)
	}
	if p, ok := got.(*staking.Platform); !ok || *p != *platform {
		t.Errorf("Decode(platform) = %#v; want %+v", got, platform)
	}

	got, err = Decode(stateData)
	if err != nil {
		t.Fatalf("Decode(state) error = %v", err)
	}
	if s, ok := got.(*staking.PoolState); !ok || *s != *state {
		t.Errorf("Decode(state) = %#v; want %+v", got, state)
	}

	got, err = Decode(userData)
	if err != nil {
		t.Fatalf("Decode(user) error = %v", err)
	}
	if u, ok := got.(*staking.UserInfo); !ok || *u != *user {
		t.Errorf("Decode(user) = %#v; want %+v", got, user)
	}

	if _, err := Decode([]byte{1, 2, 3}); err == nil {
		t.Error("Decode() accepted a truncated record")
	}
	if _, err := Decode(make([]byte, 16)); err == nil {
		t.Error("Decode() accepted an unknown discriminator")
	}
}

func TestDiscriminatorStable(t *testing.T) {
	a := DiscriminatorFor("PoolState")
	b := DiscriminatorFor("PoolState")
	if a != b {
		t.Errorf("discriminator not deterministic: %x vs %x", a, b)
	}
	if a == DiscriminatorFor("UserInfo") {
		t.Error("distinct record names share a discriminator")
	}
}
