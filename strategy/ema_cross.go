package strategy

import (
	"github.com/Slidrive/prismtrade/indicators"
	"github.com/Slidrive/prismtrade/market"
)

// EMACross is the exponential variant of MACross. EMAs react faster to
// recent closes, so crossings arrive a little earlier than the simple
// averages do.
type EMACross struct {
	FastPeriod int
	SlowPeriod int
}

func NewEMACross(fast, slow int) *EMACross {
	if fast <= 0 {
		fast = 10
	}
	if slow <= 0 {
		slow = 30
	}
	return &EMACross{FastPeriod: fast, SlowPeriod: slow}
}

func (s *EMACross) Name() string { return "ema-cross" }

func (s *EMACross) Signal(bars []market.Candle, idx int) int {
	window := bars[:idx+1]

	fast, err := indicators.EMA(window, s.FastPeriod)
	if err != nil {
		return SignalFlat
	}
	slow, err := indicators.EMA(window, s.SlowPeriod)
	if err != nil {
		return SignalFlat
	}

	switch {
	case fast > slow:
		return SignalLong
	case fast < slow:
		return SignalShort
	default:
		return SignalFlat
	}
}
