package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Platform registry commands",
	Long:  `Commands for the platform registry: the treasury address and the global fee schedule new pools snapshot at creation.`,
}

var platformInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize or update the platform registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		treasuryArg, _ := cmd.Flags().GetString("treasury")
		treasury, err := mustKey(treasuryArg)
		if err != nil {
			return err
		}
		deployFee, _ := cmd.Flags().GetUint64("deploy-fee")
		stakeFee, _ := cmd.Flags().GetUint16("stake-fee-bps")
		unstakeFee, _ := cmd.Flags().GetUint16("unstake-fee-bps")

		platform, err := rt.engine.InitializePlatform(ctx, treasury, deployFee, stakeFee, unstakeFee)
		if err != nil {
			return err
		}

		fmt.Println("Platform initialized")
		fmt.Printf("  Treasury:        %s\n", platform.Treasury)
		fmt.Printf("  Deploy Fee:      %d\n", platform.DeployFee)
		fmt.Printf("  Stake Fee Bps:   %d\n", platform.StakeFeeBps)
		fmt.Printf("  Unstake Fee Bps: %d\n", platform.UnstakeFeeBps)
		return nil
	},
}

var platformShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the platform registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, err := newRuntime(ctx, cmd)
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		platform, err := rt.engine.Platform(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Treasury:        %s\n", platform.Treasury)
		fmt.Printf("Deploy Fee:      %d\n", platform.DeployFee)
		fmt.Printf("Stake Fee Bps:   %d\n", platform.StakeFeeBps)
		fmt.Printf("Unstake Fee Bps: %d\n", platform.UnstakeFeeBps)
		return nil
	},
}

func init() {
	platformInitCmd.Flags().String("treasury", "", "treasury address collecting fees")
	platformInitCmd.Flags().Uint64("deploy-fee", 0, "flat pool creation fee, in reward mint units")
	platformInitCmd.Flags().Uint16("stake-fee-bps", 0, "stake fee in basis points")
	platformInitCmd.Flags().Uint16("unstake-fee-bps", 0, "unstake fee in basis points")
	if err := platformInitCmd.MarkFlagRequired("treasury"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(platformCmd)
	platformCmd.AddCommand(platformInitCmd)
	platformCmd.AddCommand(platformShowCmd)
}
