package memory

import (
	"context"
	"testing"
	"time"

	"github.com/lugondev/go-brewstake/internal/store"
)

func TestPlatformRoundtrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	if _, err := repo.Platform().Get(ctx); err != store.ErrNotFound {
		t.Fatalf("Get() on empty store error = %v; want ErrNotFound", err)
	}

	model := &store.PlatformModel{
		ID:            store.PlatformID,
		Treasury:      "11111111111111111111111111111111",
		DeployFee:     1_000,
		StakeFeeBps:   200,
		UnstakeFeeBps: 50,
		CreatedAt:     time.Now(),
	}
	if err := repo.Platform().Save(ctx, model); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Platform().Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DeployFee != 1_000 || got.StakeFeeBps != 200 {
		t.Errorf("Get() = %+v; want saved values", got)
	}

	// Mutating the returned row must not leak into the store.
	got.DeployFee = 9_999
	again, _ := repo.Platform().Get(ctx)
	if again.DeployFee != 1_000 {
		t.Error("store shares mutable state with callers")
	}
}

func TestPoolQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	for _, m := range []*store.PoolModel{
		{Key: "kb", Owner: "alice", PoolID: "b"},
		{Key: "ka", Owner: "alice", PoolID: "a"},
		{Key: "kc", Owner: "bob", PoolID: "c"},
	} {
		if err := repo.Pools().Save(ctx, m); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	all, err := repo.Pools().FindAll(ctx, 0, 0)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("FindAll() returned %d pools; want 3", len(all))
	}
	if all[0].Key != "ka" || all[1].Key != "kb" {
		t.Errorf("FindAll() not ordered by key: %s, %s", all[0].Key, all[1].Key)
	}

	alice, err := repo.Pools().FindByOwner(ctx, "alice", 1, 1)
	if err != nil {
		t.Fatalf("FindByOwner() error = %v", err)
	}
	if len(alice) != 1 || alice[0].Key != "kb" {
		t.Errorf("FindByOwner(limit=1, offset=1) = %+v; want [kb]", alice)
	}

	if _, err := repo.Pools().FindByKey(ctx, "missing"); err != store.ErrNotFound {
		t.Errorf("FindByKey(missing) error = %v; want ErrNotFound", err)
	}
}

func TestPositionQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	for _, m := range []*store.PositionModel{
		{Key: "p1", Pool: "pool-a", Owner: "alice", StakedAmount: 10},
		{Key: "p2", Pool: "pool-a", Owner: "bob", StakedAmount: 20},
		{Key: "p3", Pool: "pool-b", Owner: "alice", StakedAmount: 30},
	} {
		if err := repo.Positions().Save(ctx, m); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	inA, err := repo.Positions().FindByPool(ctx, "pool-a", 0, 0)
	if err != nil {
		t.Fatalf("FindByPool() error = %v", err)
	}
	if len(inA) != 2 {
		t.Errorf("FindByPool(pool-a) returned %d rows; want 2", len(inA))
	}

	got, err := repo.Positions().FindByKey(ctx, "p3")
	if err != nil {
		t.Fatalf("FindByKey() error = %v", err)
	}
	if got.StakedAmount != 30 {
		t.Errorf("FindByKey(p3).StakedAmount = %d; want 30", got.StakedAmount)
	}
}
