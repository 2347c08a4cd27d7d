package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/lugondev/go-brewstake/internal/clock"
	"github.com/lugondev/go-brewstake/internal/common"
	"github.com/lugondev/go-brewstake/internal/config"
	"github.com/lugondev/go-brewstake/internal/engine"
	"github.com/lugondev/go-brewstake/internal/events"
	"github.com/lugondev/go-brewstake/internal/ledger"
	"github.com/lugondev/go-brewstake/internal/metrics"
	solclient "github.com/lugondev/go-brewstake/internal/solana"
	"github.com/lugondev/go-brewstake/internal/store"
	memstore "github.com/lugondev/go-brewstake/internal/store/memory"

	// Register the storage backends.
	_ "github.com/lugondev/go-brewstake/internal/store/mongo"
	_ "github.com/lugondev/go-brewstake/internal/store/postgres"
)

// runtime bundles the engine and its collaborators as built from config.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics metrics.Metrics
	store   store.Repository
	engine  *engine.Engine
}

// newRuntime builds the engine from the resolved configuration. The storage,
// ledger and clock backends are all selected by config so the same commands
// drive a local dry run and a live deployment.
func newRuntime(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger := common.NewLogger(cfg.Log.Level, cfg.Log.Format)

	programID, err := solana.PublicKeyFromBase58(cfg.Solana.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program id %q: %w", cfg.Solana.ProgramID, err)
	}

	var st store.Repository
	switch cfg.Storage.Type {
	case "", "memory":
		st = memstore.NewRepository()
	case "postgres":
		st, err = store.NewPostgresRepositoryFromConfig(ctx, &cfg.Storage.Postgres)
	case "mongodb":
		st, err = store.NewMongoRepositoryFromConfig(ctx, &cfg.Storage.MongoDB)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("storage init: %w", err)
	}

	var ld ledger.Ledger
	var cl clock.Clock
	switch cfg.Ledger.Type {
	case "", "memory":
		slot, _ := cmd.Flags().GetUint64("slot")
		ld = ledger.NewMemory()
		cl = clock.NewManual(slot)
	case "rpc":
		client := solclient.NewClient(cfg.Solana.GetRPCEndpoint())
		wallet, err := solclient.WalletFromFile(cfg.Solana.Keypair)
		if err != nil {
			return nil, fmt.Errorf("load keypair: %w", err)
		}
		rpcLedger := ledger.NewRPC(client, wallet)
		rpcLedger.SetLogger(logger)
		ld = rpcLedger
		cl = clock.NewRPC(client)
	default:
		return nil, fmt.Errorf("unknown ledger type %q", cfg.Ledger.Type)
	}

	collected := metrics.NewCollection(metrics.NewLogMetrics(logger))
	if err := collected.Initialize(ctx); err != nil {
		return nil, err
	}

	eng := engine.New(programID, st, ld, cl,
		engine.WithLogger(logger),
		engine.WithMetrics(collected),
		engine.WithEmitter(events.NewEmitter(events.NewLogSink(logger))),
	)
	return &runtime{cfg: cfg, logger: logger, metrics: collected, store: st, engine: eng}, nil
}

func (r *runtime) Close(ctx context.Context) {
	if err := r.metrics.Flush(ctx); err != nil {
		r.logger.Warn("metrics flush failed", "error", err)
	}
	if err := r.store.Close(ctx); err != nil {
		r.logger.Warn("store close failed", "error", err)
	}
}

func mustKey(arg string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(arg)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid address %q: %w", arg, err)
	}
	return key, nil
}
