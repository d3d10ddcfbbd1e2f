package backtest

import (
	"fmt"

	"github.com/Slidrive/prismtrade/ledger"
	"github.com/Slidrive/prismtrade/market"
	"github.com/Slidrive/prismtrade/stats"
	"github.com/Slidrive/prismtrade/strategy"
)

// Exit reasons recorded on closed trades.
const (
	ReasonSignal    = "signal"
	ReasonEndOfData = "end_of_data"
)

// Result is the outcome of one backtest run.
type Result struct {
	Trades      []ledger.Trade
	EquityCurve []stats.EquityPoint
	Stats       stats.Report
}

// Run replays the bars through the strategy in chronological order.
//
// Open/close decisions are derived from the difference of consecutive
// categorical signals: a swing from short (-1) to long (+1) opens a long,
// the opposite swing closes the earliest open position. Holding a signal
// across bars is a no-op, so a sustained long never double-opens.
//
// One equity sample is recorded per bar. Any positions still open after the
// last bar are force-closed at its close price before statistics are
// computed, so a run always ends with an empty open set.
func Run(bars []market.Candle, strat strategy.Strategy, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("backtest: %w", err)
	}
	if strat == nil {
		return Result{}, fmt.Errorf("backtest: strategy is required")
	}

	engine := NewEngine(cfg)

	last := strategy.SignalFlat
	for i, bar := range bars {
		sig := strat.Signal(bars, i)
		delta := sig - last
		last = sig

		switch {
		case delta == +2 && engine.CanOpenPosition():
			engine.OpenPositionRisk(bar.Time, bar.Close, ledger.Buy, cfg.RiskPct)

		case delta == -2 && engine.NumOpen() > 0:
			engine.ClosePosition(bar.Time, bar.Close, ReasonSignal)
		}

		engine.UpdateEquity(bar.Time, bar.Close)
	}

	if len(bars) > 0 {
		final := bars[len(bars)-1]
		for engine.NumOpen() > 0 {
			engine.ClosePosition(final.Time, final.Close, ReasonEndOfData)
		}
	}

	return Result{
		Trades:      engine.ClosedTrades(),
		EquityCurve: engine.EquityCurve(),
		Stats:       engine.Stats(),
	}, nil
}
