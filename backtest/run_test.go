package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slidrive/prismtrade/market"
)

// scripted replays a fixed signal sequence, one value per bar.
type scripted struct {
	signals []int
}

func (s scripted) Name() string { return "scripted" }

func (s scripted) Signal(_ []market.Candle, idx int) int {
	if idx >= len(s.signals) {
		return 0
	}
	return s.signals[idx]
}

func bars(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{
			Time:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return out
}

func TestRunOpenAndCloseOnSignalSwing(t *testing.T) {
	t.Parallel()

	// -1 -> +1 opens, +1 -> -1 closes.
	res, err := Run(bars(100, 100, 110, 110), scripted{[]int{-1, +1, -1, -1}}, cfg())
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	tr := res.Trades[0]
	assert.InDelta(t, 100.0, tr.EntryPrice, 1e-9)
	assert.InDelta(t, 110.0, tr.ExitPrice, 1e-9)
	assert.Equal(t, ReasonSignal, tr.ExitReason)
}

func TestRunSustainedSignalNeverDoubleOpens(t *testing.T) {
	t.Parallel()

	res, err := Run(bars(100, 100, 100, 100, 110), scripted{[]int{-1, +1, +1, +1, -1}}, cfg())
	require.NoError(t, err)

	assert.Len(t, res.Trades, 1)
}

func TestRunFlatToLongDoesNotOpen(t *testing.T) {
	t.Parallel()

	// A 0 -> +1 step is not a full swing; only -1 -> +1 opens.
	res, err := Run(bars(100, 100, 100), scripted{[]int{0, +1, +1}}, cfg())
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
}

func TestRunForceClosesAtEndOfData(t *testing.T) {
	t.Parallel()

	res, err := Run(bars(100, 100, 120), scripted{[]int{-1, +1, +1}}, cfg())
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	tr := res.Trades[0]
	assert.Equal(t, ReasonEndOfData, tr.ExitReason)
	assert.InDelta(t, 120.0, tr.ExitPrice, 1e-9)
	assert.Equal(t, bars(100, 100, 120)[2].Time, tr.ExitTime)
}

func TestRunEquityCurveOnePointPerBar(t *testing.T) {
	t.Parallel()

	data := bars(100, 101, 102, 103, 104)
	res, err := Run(data, scripted{[]int{0, 0, 0, 0, 0}}, cfg())
	require.NoError(t, err)

	require.Len(t, res.EquityCurve, len(data))
	for i, p := range res.EquityCurve {
		assert.Equal(t, data[i].Time, p.Time)
		assert.InDelta(t, 10000.0, p.Equity, 1e-9)
	}
}

func TestRunCapitalReconciles(t *testing.T) {
	t.Parallel()

	res, err := Run(
		bars(100, 100, 110, 110, 105, 120),
		scripted{[]int{-1, +1, -1, +1, +1, -1}},
		cfg(),
	)
	require.NoError(t, err)
	require.Len(t, res.Trades, 2)

	var pnl float64
	for _, tr := range res.Trades {
		pnl += tr.ProfitLoss
	}
	assert.InDelta(t, 10000+pnl, res.Stats.FinalCapital, 1e-9)
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()

	data := bars(100, 100, 110, 108, 112, 115)
	sig := []int{-1, +1, -1, +1, -1, +1}

	a, err := Run(data, scripted{sig}, cfg())
	require.NoError(t, err)
	b, err := Run(data, scripted{sig}, cfg())
	require.NoError(t, err)

	assert.Equal(t, a.Trades, b.Trades)
	assert.Equal(t, a.EquityCurve, b.EquityCurve)
	assert.Equal(t, a.Stats, b.Stats)
}

func TestRunEmptyBars(t *testing.T) {
	t.Parallel()

	res, err := Run(nil, scripted{nil}, cfg())
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	assert.Empty(t, res.EquityCurve)
	assert.InDelta(t, 10000.0, res.Stats.FinalCapital, 1e-9)
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Parallel()

	bad := cfg()
	bad.InitialCapital = -1
	_, err := Run(bars(100), scripted{[]int{0}}, bad)
	assert.Error(t, err)

	bad = cfg()
	bad.RiskPct = 0
	_, err = Run(bars(100), scripted{[]int{0}}, bad)
	assert.Error(t, err)

	_, err = Run(bars(100), nil, cfg())
	assert.Error(t, err)
}
