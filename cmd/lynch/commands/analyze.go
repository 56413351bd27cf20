package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ats/lynchboard/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one portfolio analysis now",
	Long: `Runs a single analysis pass over the configured portfolio file.

This command:
- Loads holdings from PORTFOLIO_FILE
- Collects quotes, fundamentals and research per ticker
- Evaluates every holding and prints the recommendations
- Writes the HTML dashboard and sends the email digest when configured

Example:
  go run ./cmd/lynch analyze`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := initRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	rep, err := rt.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printReport(rep)
	return nil
}

func printReport(rep *contracts.PortfolioReport) {
	fmt.Printf("=== Portfolio Report %s ===\n\n", rep.GeneratedAt.Format("2006-01-02"))

	for _, entry := range rep.Entries {
		fmt.Printf("%-6s %-5s weight %5.1f%%  gain %+7.1f%%  alerts %d\n",
			entry.Signal.Ticker,
			entry.Recommendation.State,
			entry.Signal.PositionWeight*100,
			entry.GainPercent,
			entry.AlertCount,
		)
		for _, line := range entry.Recommendation.Rationale {
			fmt.Printf("       - %s\n", line)
		}
		if tr := entry.Recommendation.TrimRange; tr != nil {
			fmt.Printf("       trim %.0f%%-%.0f%% of the position\n", tr.LowPct*100, tr.HighPct*100)
		}
		fmt.Println()
	}

	if len(rep.Skipped) > 0 {
		fmt.Println("Skipped:")
		for _, s := range rep.Skipped {
			fmt.Printf("  %-6s %s\n", s.Ticker, s.Reason)
		}
		fmt.Println()
	}

	fmt.Printf("Total value: $%.2f\n", rep.TotalValue)
	fmt.Printf("Summary: BUY %d / HOLD %d / TRIM %d / SELL %d\n",
		rep.SummaryCounts[contracts.StateBuy],
		rep.SummaryCounts[contracts.StateHold],
		rep.SummaryCounts[contracts.StateTrim],
		rep.SummaryCounts[contracts.StateSell],
	)
}
