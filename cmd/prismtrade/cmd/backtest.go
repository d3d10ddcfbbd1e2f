package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Slidrive/prismtrade/backtest"
	"github.com/Slidrive/prismtrade/config"
	"github.com/Slidrive/prismtrade/journal"
	"github.com/Slidrive/prismtrade/market"
	"github.com/Slidrive/prismtrade/strategy"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy backtest over a candle CSV",
	Long: `Backtest replays historical OHLCV candles through a signal strategy,
tracking capital, positions and the equity curve, then prints the
performance report.

Supported strategies:
  - noop: Never signals (baseline test)
  - ma-cross: Simple moving-average crossover with configurable periods
  - ema-cross: Exponential moving-average crossover

Parameters can come from a config file (see "prismtrade config init");
flags set on the command line override file values.

Examples:
  prismtrade backtest -c data/btcusd.csv -s ma-cross --fast 10 --slow 30
  prismtrade backtest -c data/btcusd.csv --config prismtrade.yaml`,
	RunE: runBacktest,
}

var (
	btConfigPath  string
	btCandlesPath string
	btCapital     float64
	btFeeRate     float64
	btMaxPos      int
	btRiskPct     float64
	btStrategy    string
	btFast        int
	btSlow        int
	btTradesCSV   string
	btEquityCSV   string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVar(&btConfigPath, "config", "", "path to a YAML/JSON config file")
	backtestCmd.Flags().StringVarP(&btCandlesPath, "candles", "c", "", "path to candle CSV (time,open,high,low,close,volume) (required)")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 10_000, "initial capital")
	backtestCmd.Flags().Float64Var(&btFeeRate, "fee", 0.001, "fee rate per leg as fraction of notional")
	backtestCmd.Flags().IntVar(&btMaxPos, "max-positions", 1, "max concurrent open positions")
	backtestCmd.Flags().Float64Var(&btRiskPct, "risk", 2.0, "percent of capital committed per entry")

	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "ma-cross", "strategy name (noop, ma-cross, ema-cross)")
	backtestCmd.Flags().IntVar(&btFast, "fast", 10, "ma-cross: fast MA period")
	backtestCmd.Flags().IntVar(&btSlow, "slow", 30, "ma-cross: slow MA period")

	backtestCmd.Flags().StringVar(&btTradesCSV, "trades-out", "", "optional CSV path for closed trades")
	backtestCmd.Flags().StringVar(&btEquityCSV, "equity-out", "", "optional CSV path for the equity curve")

	backtestCmd.MarkFlagRequired("candles")
}

// applyFileConfig maps a loaded config file onto the backtest parameters.
// Only flags the user did not set on the command line take file values.
func applyFileConfig(cfg *config.Config, changed func(flag string) bool) {
	if !changed("capital") {
		btCapital = cfg.Account.Capital
	}
	if !changed("fee") {
		btFeeRate = cfg.Backtest.FeeRate
	}
	if !changed("max-positions") {
		btMaxPos = cfg.Backtest.MaxPositions
	}
	if !changed("risk") {
		btRiskPct = cfg.Backtest.RiskPct
	}
	if !changed("strategy") {
		btStrategy = cfg.Strategy.Name
	}
	if !changed("fast") {
		btFast = cfg.Strategy.FastPeriod
	}
	if !changed("slow") {
		btSlow = cfg.Strategy.SlowPeriod
	}

	if cfg.Journal.Type == "csv" {
		if !changed("trades-out") {
			btTradesCSV = cfg.Journal.TradesFile
		}
		if !changed("equity-out") {
			btEquityCSV = cfg.Journal.EquityFile
		}
	}
}

func runBacktest(cmd *cobra.Command, args []string) error {
	if btConfigPath != "" {
		cfg, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFileConfig(cfg, cmd.Flags().Changed)
	}

	bars, err := market.LoadCandlesCSV(btCandlesPath)
	if err != nil {
		return fmt.Errorf("load candles: %w", err)
	}
	if len(bars) == 0 {
		return fmt.Errorf("no candles in %s", btCandlesPath)
	}

	strat, err := strategy.ByName(btStrategy, btFast, btSlow)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	fmt.Printf("Running backtest with strategy: %s\n", strat.Name())
	fmt.Printf("  Candles: %s (%d bars)\n", btCandlesPath, len(bars))
	fmt.Printf("  Capital: %.2f  Fee: %.4f  Max positions: %d\n\n", btCapital, btFeeRate, btMaxPos)

	result, err := backtest.Run(bars, strat, backtest.Config{
		InitialCapital: btCapital,
		FeeRate:        btFeeRate,
		MaxPositions:   btMaxPos,
		RiskPct:        btRiskPct,
	})
	if err != nil {
		return err
	}

	result.Stats.Write(os.Stdout)

	if btTradesCSV != "" && btEquityCSV != "" {
		if err := exportCSV(result); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("Trades written to %s, equity curve to %s\n", btTradesCSV, btEquityCSV)
	}

	return nil
}

func exportCSV(result backtest.Result) error {
	w, err := journal.NewCSV(btTradesCSV, btEquityCSV)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, t := range result.Trades {
		if err := w.WriteTrade(t); err != nil {
			return err
		}
	}
	for _, p := range result.EquityCurve {
		if err := w.WriteEquity(p); err != nil {
			return err
		}
	}
	return nil
}
