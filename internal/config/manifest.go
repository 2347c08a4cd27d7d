package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PoolManifest describes a pool to create, loadable from a YAML file so
// operators can keep pool definitions in version control.
type PoolManifest struct {
	PoolID         string `yaml:"pool_id"`
	StakeMint      string `yaml:"stake_mint"`
	RewardMint     string `yaml:"reward_mint"`
	StakeDecimals  uint8  `yaml:"stake_decimals"`
	RewardDecimals uint8  `yaml:"reward_decimals"`
	RewardPerSlot  uint64 `yaml:"reward_per_slot"`
	InitialFunding uint64 `yaml:"initial_funding"`
	Duration       uint64 `yaml:"duration"` // slot count, fixed at start_reward
}

// LoadPoolManifest reads a pool manifest from a YAML file.
func LoadPoolManifest(path string) (*PoolManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m PoolManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.PoolID == "" {
		return nil, fmt.Errorf("manifest missing pool_id")
	}
	return &m, nil
}
