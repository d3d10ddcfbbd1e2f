package strategy

import "github.com/Slidrive/prismtrade/market"

// Noop never signals. Useful for plumbing tests.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Signal(bars []market.Candle, idx int) int { return SignalFlat }
