package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brewstake",
	Short: "Brewstake CLI - a multi-pool token staking engine",
	Long: `Brewstake runs staking pools over SPL tokens: creators fund a reward
budget, stakers accrue a proportional share of the per-slot emission, and a
platform treasury collects fees.

It provides commands for:
- Platform registry setup
- Pool creation and lifecycle
- Staking, unstaking, claiming and compounding
- Wallet management`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.brewstake.yaml)")
	rootCmd.PersistentFlags().String("rpc", "", "Solana RPC endpoint")
	rootCmd.PersistentFlags().String("network", "devnet", "Solana network (mainnet, devnet, testnet)")
	rootCmd.PersistentFlags().Uint64("slot", 0, "slot to evaluate against when the ledger backend is memory")

	if err := viper.BindPFlag("solana.rpc", rootCmd.PersistentFlags().Lookup("rpc")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flag: %v\n", err)
	}
	if err := viper.BindPFlag("solana.network", rootCmd.PersistentFlags().Lookup("network")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flag: %v\n", err)
	}
}
