package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lynch",
	Short: "Lynchboard - daily portfolio recommendation engine",
	Long: `Lynchboard Unified CLI

Growth-at-a-reasonable-price portfolio analyzer. Collects quotes and
fundamentals for every holding, evaluates valuation, insider activity,
debt growth, catalysts and position sizing, and produces a BUY / HOLD /
TRIM / SELL call per ticker.

Usage:
  go run ./cmd/lynch [command]

Examples:
  go run ./cmd/lynch analyze
  go run ./cmd/lynch api
  go run ./cmd/lynch scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
