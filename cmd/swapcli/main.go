package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "swapcli",
	Short: "A CLI for cross-chain atomic swaps against the TriSwap backend",
	Long: `swapcli drives the HTLC order lifecycle over the TriSwap HTTP API.

Examples:
  swapcli create --user 0xabc... --from-token USDC --to-token SOL \
    --from-amount 100000000 --from-network ethereum --to-network solana \
    --secret-hash <sha256-hex>
  swapcli status <order-id> --watch
  swapcli claim <order-id> --secret <preimage-hex>
  swapcli refund <order-id>`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "Base URL of the TriSwap backend")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
