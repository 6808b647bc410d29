package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <order-id>",
	Short: "Check the status of a swap order",
	Long: `Check the lifecycle status of a swap order.

Examples:
  swapcli status 4f7c2a...
  swapcli status 4f7c2a... --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates continuously")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	orderID := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client := newAPIClient(apiURL)

	if watchStatus {
		if jsonOutput {
			fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
			os.Exit(1)
		}
		watchOrderStatus(client, orderID)
		return
	}

	order, err := client.GetOrder(orderID)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(order, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayOrder(order)
}

func watchOrderStatus(client *apiClient, orderID string) {
	fmt.Printf("\nWatching order %s\n", color.CyanString(orderID))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	checkAndDisplay(client, orderID)

	for range ticker.C {
		order := checkAndDisplay(client, orderID)
		if order != nil && order.Status.Terminal() {
			return
		}
	}
}

func checkAndDisplay(client *apiClient, orderID string) *model.SwapOrder {
	order, err := client.GetOrder(orderID)
	if err != nil {
		color.Red("Error: %v", err)
		return nil
	}

	displayOrder(order)
	return order
}

func displayOrder(order *model.SwapOrder) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                        ORDER STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Order ID:        %s\n", color.CyanString(order.ID))
	fmt.Printf("  Status:          %s\n", coloredStatus(string(order.Status)))
	fmt.Printf("  Route:           %s %s (%s) -> %s (%s)\n",
		order.FromAmount, order.FromToken, order.FromNetwork, order.ToToken, order.ToNetwork)
	if order.ExpectedAmount != "" {
		fmt.Printf("  Expected Output: %s\n", order.ExpectedAmount)
	}
	fmt.Printf("  Consensus:       %d proofs\n", order.ConsensusCount)
	fmt.Printf("  Timelock:        %s\n", time.Unix(order.Timelock, 0).Format("2006-01-02 15:04:05"))

	if order.LockTxHash != "" {
		fmt.Printf("  Lock Tx:         %s\n", color.HiBlackString(order.LockTxHash))
	}
	if order.ExecuteTxHash != "" {
		fmt.Printf("  Execute Tx:      %s\n", color.HiBlackString(order.ExecuteTxHash))
	}
	if order.RefundTxHash != "" {
		fmt.Printf("  Refund Tx:       %s\n", color.HiBlackString(order.RefundTxHash))
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func coloredStatus(status string) string {
	switch model.SwapOrderStatus(status) {
	case model.SwapOrderStatusExecuted:
		return color.GreenString(strings.ToUpper(status))
	case model.SwapOrderStatusPending, model.SwapOrderStatusConsensusPending:
		return color.YellowString(strings.ToUpper(status))
	case model.SwapOrderStatusConsensusAchieved:
		return color.CyanString(strings.ToUpper(status))
	case model.SwapOrderStatusRefunded, model.SwapOrderStatusFailed:
		return color.RedString(strings.ToUpper(status))
	default:
		return strings.ToUpper(status)
	}
}
