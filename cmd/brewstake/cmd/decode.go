package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lugondev/go-brewstake/internal/codec"
	"github.com/lugondev/go-brewstake/internal/config"
	solclient "github.com/lugondev/go-brewstake/internal/solana"
	"github.com/lugondev/go-brewstake/internal/staking"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [address]",
	Short: "Fetch and decode an on-chain staking record",
	Long: `Fetch the account at the given address via the configured RPC endpoint and
decode it by its discriminator: platform registry, pool config, pool state or
user position.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubKey, err := mustKey(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		client := solclient.NewClient(cfg.Solana.GetRPCEndpoint())
		data, err := client.GetAccountData(cmd.Context(), pubKey)
		if err != nil {
			return err
		}
		record, err := codec.Decode(data)
		if err != nil {
			return err
		}

		fmt.Printf("Address: %s\n", pubKey)
		switch r := record.(type) {
		case *staking.Platform:
			fmt.Println("Record: platform registry")
			fmt.Printf("  Treasury:        %s\n", r.Treasury)
			fmt.Printf("  Deploy Fee:      %d\n", r.DeployFee)
			fmt.Printf("  Stake Fee Bps:   %d\n", r.StakeFeeBps)
			fmt.Printf("  Unstake Fee Bps: %d\n", r.UnstakeFeeBps)
		case *staking.PoolConfig:
			fmt.Println("Record: pool config")
			fmt.Printf("  Pool ID:     %s\n", r.PoolID)
			fmt.Printf("  Owner:       %s\n", r.Owner)
			fmt.Printf("  Stake Mint:  %s (decimals %d)\n", r.StakeMint, r.StakeDecimals)
			fmt.Printf("  Reward Mint: %s (decimals %d)\n", r.RewardMint, r.RewardDecimals)
			fmt.Printf("  Fees:        stake %d bps, unstake %d bps\n", r.StakeFeeBps, r.UnstakeFeeBps)
			fmt.Printf("  Vaults:      stake %s, reward %s\n", r.StakeVault, r.RewardVault)
		case *staking.PoolState:
			fmt.Println("Record: pool state")
			fmt.Printf("  Total Staked:     %d\n", r.TotalStaked)
			fmt.Printf("  Reward Budget:    %d at %d/slot\n", r.RewardAmount, r.RewardPerSlot)
			fmt.Printf("  Acc/Share:        %d\n", r.AccRewardPerShare)
			fmt.Printf("  Last Update Slot: %d\n", r.LastUpdateSlot)
			if r.Started() {
				fmt.Printf("  Emission:         slots %d..%d\n", r.StartSlot, r.EndSlot)
			} else {
				fmt.Printf("  Emission:         not started\n")
			}
		case *staking.UserInfo:
			fmt.Println("Record: user position")
			fmt.Printf("  Staked:       %d\n", r.StakedAmount)
			fmt.Printf("  Reward Debt:  %d\n", r.RewardDebt)
			fmt.Printf("  Deposit Slot: %d\n", r.DepositSlot)
		default:
			return fmt.Errorf("unhandled record type %T", record)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
