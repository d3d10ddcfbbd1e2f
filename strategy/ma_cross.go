package strategy

import (
	"github.com/Slidrive/prismtrade/indicators"
	"github.com/Slidrive/prismtrade/market"
)

// MACross signals long while the fast moving average is above the slow one
// and short while it is below. Both averages are simple rolling means of the
// close; until the slow window is full the signal stays flat.
type MACross struct {
	FastPeriod int
	SlowPeriod int
}

func NewMACross(fast, slow int) *MACross {
	if fast <= 0 {
		fast = 10
	}
	if slow <= 0 {
		slow = 30
	}
	return &MACross{FastPeriod: fast, SlowPeriod: slow}
}

func (s *MACross) Name() string { return "ma-cross" }

func (s *MACross) Signal(bars []market.Candle, idx int) int {
	window := bars[:idx+1]

	fast, err := indicators.SMA(window, s.FastPeriod)
	if err != nil {
		return SignalFlat
	}
	slow, err := indicators.SMA(window, s.SlowPeriod)
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
