package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slidrive/prismtrade/market"
)

func candles(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i].Close = c
	}
	return out
}

func TestMACrossSignals(t *testing.T) {
	t.Parallel()

	s := NewMACross(2, 3)

	// Too few bars for the slow window: flat.
	bars := candles(100, 100)
	assert.Equal(t, SignalFlat, s.Signal(bars, 1))

	// Rising closes: fast mean above slow mean.
	bars = candles(100, 101, 102, 103)
	assert.Equal(t, SignalLong, s.Signal(bars, 3))

	// Falling closes: fast mean below slow mean.
	bars = candles(103, 102, 101, 100)
	assert.Equal(t, SignalShort, s.Signal(bars, 3))

	// Constant closes: both means equal.
	bars = candles(100, 100, 100, 100)
	assert.Equal(t, SignalFlat, s.Signal(bars, 3))
}

func TestMACrossUsesOnlyPastBars(t *testing.T) {
	t.Parallel()

	s := NewMACross(2, 3)

	// A huge future close must not leak into the signal at idx 3.
	past := candles(103, 102, 101, 100)
	withFuture := append(candles(103, 102, 101, 100), candles(10000)...)

	assert.Equal(t, s.Signal(past, 3), s.Signal(withFuture, 3))
}

func TestEMACrossSignals(t *testing.T) {
	t.Parallel()

	s := NewEMACross(2, 3)

	bars := candles(100, 100)
	assert.Equal(t, SignalFlat, s.Signal(bars, 1))

	bars = candles(100, 101, 102, 103, 104)
	assert.Equal(t, SignalLong, s.Signal(bars, 4))

	bars = candles(104, 103, 102, 101, 100)
	assert.Equal(t, SignalShort, s.Signal(bars, 4))
}

func TestDefaultPeriods(t *testing.T) {
	t.Parallel()

	ma := NewMACross(0, 0)
	assert.Equal(t, 10, ma.FastPeriod)
	assert.Equal(t, 30, ma.SlowPeriod)

	ema := NewEMACross(-1, -1)
	assert.Equal(t, 10, ema.FastPeriod)
	assert.Equal(t, 30, ema.SlowPeriod)
}

func TestByName(t *testing.T) {
	t.Parallel()

	s, err := ByName("ma-cross", 5, 20)
	require.NoError(t, err)
	assert.Equal(t, "ma-cross", s.Name())

	s, err = ByName("  EMA-Cross ", 5, 20)
	require.NoError(t, err)
	assert.Equal(t, "ema-cross", s.Name())

	s, err = ByName("noop", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "noop", s.Name())

	_, err = ByName("martingale", 0, 0)
	assert.Error(t, err)
}

// alwaysLong signals long on every bar.
type alwaysLong struct{}

func (alwaysLong) Name() string { return "Always-Long" }

func (alwaysLong) Signal(_ []market.Candle, _ int) int { return SignalLong }

func TestRegisterCustomStrategy(t *testing.T) {
	Register(alwaysLong{})

	// Lookup is case-insensitive for registered strategies too.
	s, err := ByName("  always-long ", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Always-Long", s.Name())
	assert.Equal(t, SignalLong, s.Signal(candles(100), 0))

	// Built-ins win over a registered strategy of the same name.
	Register(&MACross{FastPeriod: 99, SlowPeriod: 100})
	s, err = ByName("ma-cross", 5, 20)
	require.NoError(t, err)
	assert.Equal(t, 5, s.(*MACross).FastPeriod)
}

func TestNoopAlwaysFlat(t *testing.T) {
	t.Parallel()

	bars := candles(100, 120, 80)
	for i := range bars {
		assert.Equal(t, SignalFlat, Noop{}.Signal(bars, i))
	}
}
