package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Slidrive/prismtrade/broker/paper"
	"github.com/Slidrive/prismtrade/internal/logger"
	"github.com/Slidrive/prismtrade/journal"
	"github.com/Slidrive/prismtrade/ledger"
	"github.com/Slidrive/prismtrade/live"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Run a scripted paper-trading session",
	Long: `Paper runs the live position engine against the in-memory exchange
simulator, walking one trade through its full lifecycle:

  1. Open a market buy with stop-loss/take-profit offsets
  2. Move the price and evaluate the triggers
  3. Close the position and print the trade history

Trades are persisted to a SQLite journal so the session can be inspected
afterwards.`,
	RunE: runPaper,
}

var (
	paperDBPath  string
	paperSymbol  string
	paperAmount  float64
	paperStopPct float64
	paperTakePct float64
)

func init() {
	rootCmd.AddCommand(paperCmd)

	paperCmd.Flags().StringVarP(&paperDBPath, "db", "d", "./paper.sqlite", "path to SQLite trade journal")
	paperCmd.Flags().StringVar(&paperSymbol, "symbol", "BTC/USD", "trading pair")
	paperCmd.Flags().Float64Var(&paperAmount, "amount", 0.1, "order amount")
	paperCmd.Flags().Float64Var(&paperStopPct, "stop", 5, "stop loss percent below entry")
	paperCmd.Flags().Float64Var(&paperTakePct, "take", 10, "take profit percent above entry")
}

func runPaper(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := journal.NewSQLite(paperDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	exchange := paper.New()
	engine := live.New(exchange, store, live.Config{Mode: ledger.Paper, FeeRate: 0.001}, log)

	now := time.Now().UTC()
	exchange.SetPrice(paperSymbol, 100, now)

	buy, err := engine.ExecuteBuy(ctx, live.BuyRequest{
		Symbol:        paperSymbol,
		Amount:        paperAmount,
		StopLossPct:   paperStopPct,
		TakeProfitPct: paperTakePct,
	})
	if err != nil {
		return fmt.Errorf("buy: %w", err)
	}
	fmt.Printf("Opened %s at %.2f (trade %s)\n", paperSymbol, buy.Trade.EntryPrice, buy.Trade.ID)

	// Rally through the take-profit level.
	exchange.SetPrice(paperSymbol, 112, now.Add(time.Minute))

	advice, err := engine.CheckStopTakeProfit(ctx, buy.Trade.ID)
	if err != nil {
		return fmt.Errorf("check triggers: %w", err)
	}
	fmt.Printf("Trigger check: action=%s reason=%s\n", advice.Action, advice.Reason)

	if advice.Action == live.ActionClose {
		result, err := engine.ClosePosition(ctx, buy.Trade.ID, string(advice.Reason))
		if err != nil {
			return fmt.Errorf("close: %w", err)
		}
		fmt.Printf("Closed at %.2f, P&L %.2f\n", result.ExitPrice, result.Trade.ProfitLoss)
	}

	history, err := engine.TradeHistory(ctx, 10)
	if err != nil {
		return err
	}

	fmt.Println("\nTrade history:")
	for _, t := range history {
		fmt.Printf("  %s %s %s entry=%.2f exit=%.2f pnl=%.2f (%s)\n",
			t.ID, t.Symbol, t.Side, t.EntryPrice, t.ExitPrice, t.ProfitLoss, t.ExitReason)
	}

	return nil
}
