package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

var claimSecret string

var initCmd = &cobra.Command{
	Use:   "init <order-id>",
	Short: "Register an order on the consensus layer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient(apiURL)
		order, err := client.InitializeOrder(args[0])
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		printLifecycleResult(cmd, order, fmt.Sprintf("Operation registered: %s", order.OperationID))
	},
}

var pollCmd = &cobra.Command{
	Use:   "poll <order-id>",
	Short: "Refresh the consensus proof count",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient(apiURL)
		order, err := client.PollConsensus(args[0])
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		printLifecycleResult(cmd, order, fmt.Sprintf("Proof count: %d", order.ConsensusCount))
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim <order-id>",
	Short: "Claim an order by revealing the secret preimage",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient(apiURL)
		order, err := client.ClaimOrder(args[0], claimSecret)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		printLifecycleResult(cmd, order, fmt.Sprintf("Swap executed: %s", order.ExecuteTxHash))
	},
}

var refundCmd = &cobra.Command{
	Use:   "refund <order-id>",
	Short: "Refund an order after its timelock has expired",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newAPIClient(apiURL)
		order, err := client.RefundOrder(args[0])
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		printLifecycleResult(cmd, order, fmt.Sprintf("Order refunded: %s", order.RefundTxHash))
	},
}

var listCmd = &cobra.Command{
	Use:   "list <user-address>",
	Short: "List orders for a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		client := newAPIClient(apiURL)
		orders, err := client.ListOrders(args[0])
		if err != nil {
			printError(err)
			os.Exit(1)
		}

		if jsonOutput {
			jsonData, _ := json.MarshalIndent(orders, "", "  ")
			fmt.Println(string(jsonData))
			return
		}

		if len(orders) == 0 {
			fmt.Println("\nNo orders found.")
			return
		}

		fmt.Println()
		for _, order := range orders {
			fmt.Printf("  %s  %s  %s %s (%s) -> %s (%s)\n",
				color.CyanString(order.ID), coloredStatus(string(order.Status)),
				order.FromAmount, order.FromToken, order.FromNetwork,
				order.ToToken, order.ToNetwork)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(initCmd, pollCmd, claimCmd, refundCmd, listCmd)

	claimCmd.Flags().StringVar(&claimSecret, "secret", "", "Secret preimage in hex (required)")
	claimCmd.MarkFlagRequired("secret")
}

func printLifecycleResult(cmd *cobra.Command, order *model.SwapOrder, message string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(order, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\n%s\n", message)
	fmt.Printf("  Status: %s\n\n", coloredStatus(string(order.Status)))
}
