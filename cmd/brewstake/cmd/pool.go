package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lugondev/go-brewstake/internal/config"
	"github.com/lugondev/go-brewstake/internal/engine"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Pool lifecycle commands",
	Long:  `Commands for creating pools, starting reward emission and inspecting pool state.`,
}

var poolCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a pool from a manifest file",
	Long: `Create a staking pool as described by a YAML manifest. The creator funds
the initial reward budget and pays the platform deploy fee; the emission
window stays closed until 'pool start'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		manifestPath, _ := cmd.Flags().GetString("manifest")
		manifest, err := config.LoadPoolManifest(manifestPath)
		if err != nil {
			return err
		}
		creatorArg, _ := cmd.Flags().GetString("creator")
		creator, err := mustKey(creatorArg)
		if err != nil {
			return err
		}
		stakeMint, err := mustKey(manifest.StakeMint)
		if err != nil {
			return err
		}
		rewardMint, err := mustKey(manifest.RewardMint)
		if err != nil {
			return err
		}

		pool, err := rt.engine.CreatePool(ctx, engine.CreatePoolParams{
			Creator:        creator,
			PoolID:         manifest.PoolID,
			StakeMint:      stakeMint,
			RewardMint:     rewardMint,
			StakeDecimals:  manifest.StakeDecimals,
			RewardDecimals: manifest.RewardDecimals,
			RewardPerSlot:  manifest.RewardPerSlot,
			InitialFunding: manifest.InitialFunding,
		})
		if err != nil {
			return err
		}

		fmt.Println("Pool created")
		printPool(pool)

		if start, _ := cmd.Flags().GetBool("start"); start {
			if manifest.Duration == 0 {
				return fmt.Errorf("manifest has no duration; cannot start")
			}
			started, err := rt.engine.StartReward(ctx, creator, pool.Key, manifest.Duration)
			if err != nil {
				return err
			}
			fmt.Printf("Emission started: slots %d..%d\n", started.State.StartSlot, started.State.EndSlot)
		}
		return nil
	},
}

var poolStartCmd = &cobra.Command{
	Use:   "start [pool]",
	Short: "Start reward emission",
	Long:  `Fix the pool's emission window to [current slot, current slot + duration]. Owner-only, callable once.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		pool, err := mustKey(args[0])
		if err != nil {
			return err
		}
		ownerArg, _ := cmd.Flags().GetString("owner")
		owner, err := mustKey(ownerArg)
		if err != nil {
			return err
		}
		duration, _ := cmd.Flags().GetUint64("duration")

		started, err := rt.engine.StartReward(ctx, owner, pool, duration)
		if err != nil {
			return err
		}
		fmt.Printf("Emission started: slots %d..%d\n", started.State.StartSlot, started.State.EndSlot)
		return nil
	},
}

var poolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pools",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		ownerArg, _ := cmd.Flags().GetString("owner")

		var pools []*engine.Pool
		if ownerArg != "" {
			owner, err := mustKey(ownerArg)
			if err != nil {
				return err
			}
			pools, err = rt.engine.PoolsByOwner(ctx, owner, limit, offset)
			if err != nil {
				return err
			}
		} else {
			pools, err = rt.engine.ListPools(ctx, limit, offset)
			if err != nil {
				return err
			}
		}

		slot, err := rt.engine.CurrentSlot(ctx)
		if err != nil {
			return err
		}
		for _, p := range pools {
			fmt.Printf("%s  %-16s %-8s staked=%d budget=%d\n",
				p.Key, p.Config.PoolID, p.State.Status(slot), p.State.TotalStaked, p.State.RewardAmount)
		}
		fmt.Printf("%d pool(s)\n", len(pools))
		return nil
	},
}

var poolShowCmd = &cobra.Command{
	Use:   "show [pool]",
	Short: "Show one pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		key, err := mustKey(args[0])
		if err != nil {
			return err
		}
		pool, err := rt.engine.GetPool(ctx, key)
		if err != nil {
			return err
		}
		printPool(pool)
		return nil
	},
}

func printPool(p *engine.Pool) {
	fmt.Printf("  Address:       %s\n", p.Key)
	fmt.Printf("  Pool ID:       %s\n", p.Config.PoolID)
	fmt.Printf("  Owner:         %s\n", p.Config.Owner)
	fmt.Printf("  Stake Mint:    %s (decimals %d)\n", p.Config.StakeMint, p.Config.StakeDecimals)
	fmt.Printf("  Reward Mint:   %s (decimals %d)\n", p.Config.RewardMint, p.Config.RewardDecimals)
	fmt.Printf("  Fees:          stake %d bps, unstake %d bps\n", p.Config.StakeFeeBps, p.Config.UnstakeFeeBps)
	fmt.Printf("  Total Staked:  %d\n", p.State.TotalStaked)
	fmt.Printf("  Reward Budget: %d at %d/slot\n", p.State.RewardAmount, p.State.RewardPerSlot)
	if p.State.Started() {
		fmt.Printf("  Emission:      slots %d..%d\n", p.State.StartSlot, p.State.EndSlot)
	} else {
		fmt.Printf("  Emission:      not started\n")
	}
}

func init() {
	poolCreateCmd.Flags().String("manifest", "", "path to the pool manifest YAML")
	poolCreateCmd.Flags().String("creator", "", "pool creator address")
	poolCreateCmd.Flags().Bool("start", false, "start emission right away using the manifest duration")
	if err := poolCreateCmd.MarkFlagRequired("manifest"); err != nil {
		panic(err)
	}
	if err := poolCreateCmd.MarkFlagRequired("creator"); err != nil {
		panic(err)
	}

	poolStartCmd.Flags().String("owner", "", "pool owner address")
	poolStartCmd.Flags().Uint64("duration", 0, "emission duration in slots")
	if err := poolStartCmd.MarkFlagRequired("owner"); err != nil {
		panic(err)
	}
	if err := poolStartCmd.MarkFlagRequired("duration"); err != nil {
		panic(err)
	}

	poolListCmd.Flags().Int("limit", 0, "maximum pools to list")
	poolListCmd.Flags().Int("offset", 0, "pools to skip")
	poolListCmd.Flags().String("owner", "", "filter by owner address")

	rootCmd.AddCommand(poolCmd)
	poolCmd.AddCommand(poolCreateCmd)
	poolCmd.AddCommand(poolStartCmd)
	poolCmd.AddCommand(poolListCmd)
	poolCmd.AddCommand(poolShowCmd)
}
