package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prismtrade",
	Short: "A crypto strategy backtester and live position engine",
	Long: `Prismtrade simulates and live-executes buy/sell trading strategies
against market price series.

It provides tools for:
  - Backtesting signal strategies over historical OHLCV candles
  - Fee-adjusted P&L accounting shared between paper and live mode
  - Win rate, drawdown, Sharpe and profit-factor statistics
  - Persisting trade lifecycle state to SQLite or CSV
  - Stop-loss/take-profit trigger evaluation for open positions`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
