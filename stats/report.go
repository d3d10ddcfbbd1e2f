package stats

import (
	"fmt"
	"io"
)

// Write prints a human-readable performance summary.
func (r Report) Write(w io.Writer) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Results")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capital")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial:       %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final:         %.2f\n", r.FinalCapital)
	fmt.Fprintf(w, "Total P&L:     %.2f\n", r.TotalPL)
	fmt.Fprintf(w, "Return:        %.2f%%\n", r.TotalReturnPct)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trades")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total:         %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Winners:       %d (%.1f%%)\n", r.WinningTrades, r.WinRate)
	fmt.Fprintf(w, "Losers:        %d\n", r.LosingTrades)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Avg Win:       %.2f\n", r.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", r.AvgLoss)
	fmt.Fprintf(w, "Largest Win:   %.2f\n", r.LargestWin)
	fmt.Fprintf(w, "Largest Loss:  %.2f\n", r.LargestLoss)
	if r.HasLosses {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", r.ProfitFactor)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.MaxDrawdownPct)
	fmt.Fprintf(w, "Sharpe Ratio:  %.2f\n", r.SharpeRatio)
	fmt.Fprintln(w)
}
