// Package codec serializes the engine's records in the on-chain account
// layout: an 8-byte discriminator derived from the record name followed by
// the Borsh-encoded fields. The store backends persist typed rows instead;
// the codec is how fetched account data (the decode command, external
// indexers) maps back onto the record types.
package codec

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"

	"github.com/lugondev/go-brewstake/internal/staking"
)

// Discriminator is the 8-byte record-type tag preceding the Borsh payload.
type Discriminator [8]byte

// DiscriminatorFor derives the discriminator for a record name,
// sha256("account:<name>")[0:8].
func DiscriminatorFor(name string) Discriminator {
	sum := sha256.Sum256([]byte("account:" + name))
	var d Discriminator
	copy(d[:], sum[:8])
	return d
}

var (
	discPlatform = DiscriminatorFor("Platform")
	discPool     = DiscriminatorFor("PoolConfig")
	discState    = DiscriminatorFor("PoolState")
	discUser     = DiscriminatorFor("UserInfo")
)

func marshal(disc Discriminator, v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("borsh encode: %w", err)
	}
	return buf.Bytes(), nil
}

func unmarshal(disc Discriminator, data []byte, v any) error {
	if len(data) < len(disc) {
		return fmt.Errorf("record too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:len(disc)], disc[:]) {
		return fmt.Errorf("discriminator mismatch")
	}
	if err := bin.NewBorshDecoder(data[len(disc):]).Decode(v); err != nil {
		return fmt.Errorf("borsh decode: %w", err)
	}
	return nil
}

// Decode inspects the discriminator and decodes the record behind it.
// The result is one of *staking.Platform, *staking.PoolConfig,
// *staking.PoolState or *staking.UserInfo.
func Decode(data []byte) (any, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("record too short: %d bytes", len(data))
	}
	var disc Discriminator
	copy(disc[:], data[:8])
	switch disc {
	case discPlatform:
		return UnmarshalPlatform(data)
	case discPool:
		return UnmarshalPoolConfig(data)
	case discState:
		return UnmarshalPoolState(data)
	case discUser:
		return UnmarshalUserInfo(data)
	default:
		return nil, fmt.Errorf("unknown discriminator %x", disc)
	}
}

// MarshalPlatform encodes a platform registry record.
func MarshalPlatform(p *staking.Platform) ([]byte, error) {
	return marshal(discPlatform, p)
}

// UnmarshalPlatform decodes a platform registry record.
func UnmarshalPlatform(data []byte) (*staking.Platform, error) {
	var p staking.Platform
	if err := unmarshal(discPlatform, data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MarshalPoolConfig encodes a pool configuration record.
func MarshalPoolConfig(c *staking.PoolConfig) ([]byte, error) {
	return marshal(discPool, c)
}

// UnmarshalPoolConfig decodes a pool configuration record.
func UnmarshalPoolConfig(data []byte) (*staking.PoolConfig, error) {
	var c staking.PoolConfig
	if err := unmarshal(discPool, data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MarshalPoolState encodes a pool state record.
func MarshalPoolState(s *staking.PoolState) ([]byte, error) {
	return marshal(discState, s)
}

// UnmarshalPoolState decodes a pool state record.
func UnmarshalPoolState(data []byte) (*staking.PoolState, error) {
	var s staking.PoolState
	if err := unmarshal(discState, data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MarshalUserInfo encodes a position record.
func MarshalUserInfo(u *staking.UserInfo) ([]byte, error) {
	return marshal(discUser, u)
}

// UnmarshalUserInfo decodes a position record.
func UnmarshalUserInfo(data []byte) (*staking.UserInfo, error) {
	var u staking.UserInfo
	if err := unmarshal(discUser, data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
