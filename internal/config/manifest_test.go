package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPoolManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.yaml")
	manifest := `pool_id: summer-campaign
stake_mint: So11111111111111111111111111111111111111112
reward_mint: EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v
stake_decimals: 9
reward_decimals: 6
reward_per_slot: 10
initial_funding: 10000000
duration: 432000
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadPoolManifest(path)
	if err != nil {
		t.Fatalf("LoadPoolManifest: %v", err)
	}
	if m.PoolID != "summer-campaign" {
		t.Errorf("pool_id = %q", m.PoolID)
	}
	if m.RewardPerSlot != 10 || m.InitialFunding != 10_000_000 {
		t.Errorf("emission = %d/%d, want 10/10000000", m.RewardPerSlot, m.InitialFunding)
	}
	if m.Duration != 432_000 {
		t.Errorf("duration = %d, want 432000", m.Duration)
	}
}

func TestLoadPoolManifestMissingID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pool.yaml")
	if err := os.WriteFile(path, []byte("reward_per_slot: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPoolManifest(path); err == nil {
		t.Fatal("expected error for manifest without pool_id")
	}
}

func TestLoadPoolManifestMissingFile(t *testing.T) {
	if _, err := LoadPoolManifest("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
