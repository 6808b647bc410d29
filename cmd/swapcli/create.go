package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createUser        string
	createFromToken   string
	createToToken     string
	createFromAmount  string
	createMinAmount   string
	createFromNetwork string
	createToNetwork   string
	createSecretHash  string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new swap order",
	Long: `Create a cross-chain atomic swap order. Amounts are base-unit integer
strings and the secret hash is the sha256 commitment of your secret preimage.

Examples:
  swapcli create --user 0xabc... --from-token USDC --to-token SOL \
    --from-amount 100000000 --from-network ethereum --to-network solana \
    --secret-hash 2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b`,
	Run: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createUser, "user", "", "User address (required)")
	createCmd.Flags().StringVar(&createFromToken, "from-token", "", "Source token symbol (required)")
	createCmd.Flags().StringVar(&createToToken, "to-token", "", "Destination token symbol (required)")
	createCmd.Flags().StringVar(&createFromAmount, "from-amount", "", "Source amount in base units (required)")
	createCmd.Flags().StringVar(&createMinAmount, "min-amount", "", "Minimum acceptable output in base units")
	createCmd.Flags().StringVar(&createFromNetwork, "from-network", "", "Source network: ethereum, base or solana (required)")
	createCmd.Flags().StringVar(&createToNetwork, "to-network", "", "Destination network: ethereum, base or solana (required)")
	createCmd.Flags().StringVar(&createSecretHash, "secret-hash", "", "sha256 commitment of the secret, 64 hex chars (required)")

	createCmd.MarkFlagRequired("user")
	createCmd.MarkFlagRequired("from-token")
	createCmd.MarkFlagRequired("to-token")
	createCmd.MarkFlagRequired("from-amount")
	createCmd.MarkFlagRequired("from-network")
	createCmd.MarkFlagRequired("to-network")
	createCmd.MarkFlagRequired("secret-hash")
}

func runCreate(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client := newAPIClient(apiURL)
	order, err := client.CreateOrder(map[string]string{
		"user_address": createUser,
		"from_token":   createFromToken,
		"to_token":     createToToken,
		"from_amount":  createFromAmount,
		"min_amount":   createMinAmount,
		"from_network": createFromNetwork,
		"to_network":   createToNetwork,
		"secret_hash":  createSecretHash,
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(order, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\nOrder created: %s\n", color.CyanString(order.ID))
	fmt.Printf("  Status:          %s\n", coloredStatus(string(order.Status)))
	fmt.Printf("  Expected Output: %s %s\n", order.ExpectedAmount, order.ToToken)
	fmt.Printf("  Timelock:        %d\n\n", order.Timelock)
	fmt.Printf("Next: swapcli init %s\n\n", order.ID)
}
