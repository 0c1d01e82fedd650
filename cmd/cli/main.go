package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prosettle-cli",
		Short: "ProSettle CLI tool",
		Long:  `A command line interface for interacting with the ProSettle API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ProSettle API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}
	walletCmd.AddCommand(walletShowCmd(), walletEligibilityCmd(), walletReconcileCmd())
	rootCmd.AddCommand(walletCmd)

	// Order commands
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Order operations",
	}
	orderCmd.AddCommand(orderFeeCmd())
	rootCmd.AddCommand(orderCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func walletShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <professional-id>",
		Short: "Show the wallet snapshot for a professional",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := getJSON("/api/v1/professionals/" + args[0] + "/wallet")
			if err != nil {
				return err
			}

			printJSON(result)
			return nil
		},
	}
}

func walletEligibilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eligibility <professional-id>",
		Short: "Show withdrawal eligibility for a professional",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := getJSON("/api/v1/professionals/" + args[0] + "/eligibility")
			if err != nil {
				return err
			}

			printJSON(result)
			return nil
		},
	}
}

func walletReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <professional-id>",
		Short: "Check the wallet totals against the ledger stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := getJSON("/api/v1/professionals/" + args[0] + "/reconciliation")
			if err != nil {
				return err
			}

			printJSON(result)

			if reconciled, ok := result["is_reconciled"].(bool); ok && !reconciled {
				return fmt.Errorf("wallet %s has drifted from its ledger", args[0])
			}

			fmt.Println("Reconciliation PASSED")
			return nil
		},
	}
}

func orderFeeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee <order-id>",
		Short: "Show the fee decision recorded for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := getJSON("/api/v1/orders/" + args[0] + "/fee")
			if err != nil {
				return err
			}

			printJSON(result)
			return nil
		},
	}
}

func getJSON(path string) (map[string]any, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render output: %v\n", err)
		return
	}

	fmt.Println(string(out))
}
