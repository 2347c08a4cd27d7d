package cmd

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/lugondev/go-brewstake/internal/engine"
)

var stakeCmd = &cobra.Command{
	Use:   "stake [pool]",
	Short: "Stake tokens into a pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPositionOp(cmd, args[0], func(ctx *opContext) (*engine.Position, error) {
			amount, _ := cmd.Flags().GetUint64("amount")
			return ctx.rt.engine.Stake(ctx.ctx, ctx.user, ctx.pool, amount)
		})
	},
}

var unstakeCmd = &cobra.Command{
	Use:   "unstake [pool]",
	Short: "Withdraw staked tokens from a pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPositionOp(cmd, args[0], func(ctx *opContext) (*engine.Position, error) {
			amount, _ := cmd.Flags().GetUint64("amount")
			return ctx.rt.engine.Unstake(ctx.ctx, ctx.user, ctx.pool, amount)
		})
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim [pool]",
	Short: "Claim the pending reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		pool, user, err := poolAndUser(cmd, args[0])
		if err != nil {
			return err
		}
		claimed, err := rt.engine.ClaimReward(ctx, user, pool)
		if err != nil {
			return err
		}
		fmt.Printf("Claimed %d reward units\n", claimed)
		return nil
	},
}

var compoundCmd = &cobra.Command{
	Use:   "compound [pool]",
	Short: "Restake the pending reward",
	Long:  `Claim the pending reward and stake it back in one operation. Only valid on pools whose stake and reward mints agree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPositionOp(cmd, args[0], func(ctx *opContext) (*engine.Position, error) {
			return ctx.rt.engine.CompoundReward(ctx.ctx, ctx.user, ctx.pool)
		})
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending [pool]",
	Short: "Show the reward claimable right now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		pool, user, err := poolAndUser(cmd, args[0])
		if err != nil {
			return err
		}
		pending, err := rt.engine.Pending(ctx, pool, user)
		if err != nil {
			return err
		}
		fmt.Printf("Pending: %d reward units\n", pending)
		return nil
	},
}

type opContext struct {
	ctx  context.Context
	rt   *runtime
	pool solana.PublicKey
	user solana.PublicKey
}

func poolAndUser(cmd *cobra.Command, poolArg string) (solana.PublicKey, solana.PublicKey, error) {
	pool, err := mustKey(poolArg)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	userArg, _ := cmd.Flags().GetString("user")
	user, err := mustKey(userArg)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	return pool, user, nil
}

func runPositionOp(cmd *cobra.Command, poolArg string, op func(*opContext) (*engine.Position, error)) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	pool, user, err := poolAndUser(cmd, poolArg)
	if err != nil {
		return err
	}
	pos, err := op(&opContext{ctx: ctx, rt: rt, pool: pool, user: user})
	if err != nil {
		return err
	}

	fmt.Println("Position updated")
	fmt.Printf("  Pool:         %s\n", pos.Pool)
	fmt.Printf("  Owner:        %s\n", pos.Owner)
	fmt.Printf("  Staked:       %d\n", pos.Info.StakedAmount)
	fmt.Printf("  Deposit Slot: %d\n", pos.Info.DepositSlot)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{stakeCmd, unstakeCmd, claimCmd, compoundCmd, pendingCmd} {
		c.Flags().String("user", "", "staker address")
		if err := c.MarkFlagRequired("user"); err != nil {
			panic(err)
		}
	}
	stakeCmd.Flags().Uint64("amount", 0, "gross amount to stake, in stake mint units")
	unstakeCmd.Flags().Uint64("amount", 0, "gross amount to withdraw, in stake mint units")
	if err := stakeCmd.MarkFlagRequired("amount"); err != nil {
		panic(err)
	}
	if err := unstakeCmd.MarkFlagRequired("amount"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(stakeCmd)
	rootCmd.AddCommand(unstakeCmd)
	rootCmd.AddCommand(claimCmd)
	rootCmd.AddCommand(compoundCmd)
	rootCmd.AddCommand(pendingCmd)
}
