package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lugondev/go-brewstake/internal/config"
	solclient "github.com/lugondev/go-brewstake/internal/solana"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet management commands",
	Long:  `Commands for managing Solana wallets including generation and balance checks.`,
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallet := solclient.NewWallet()

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := wallet.SaveToFile(out); err != nil {
				return err
			}
			fmt.Printf("Keypair written to %s\n", out)
		}
		fmt.Println("New wallet generated!")
		fmt.Printf("  Public Key: %s\n", wallet.PublicKey())
		return nil
	},
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check wallet balance",
	Long:  `Check the SOL balance of a wallet address via the configured RPC endpoint.`,
	Args:  cobra.ExactArgs(1),
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
		lamports, err := client.GetBalance(cmd.Context(), pubKey)
		if err != nil {
			return err
		}
		fmt.Printf("Address: %s\n", pubKey)
		fmt.Printf("Balance: %d lamports\n", lamports)
		return nil
	},
}

func init() {
	walletNewCmd.Flags().String("out", "", "write the keypair JSON to this path")

	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletBalanceCmd)
}
