package stats

import (
	"math"
	"time"

	"github.com/Slidrive/prismtrade/ledger"
)

// EquityPoint is one sample of the equity curve: total equity (capital plus
// unrealized P&L of open positions) at a point in time.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// Report aggregates a closed-trade history and its equity curve into the
// standard risk/performance figures.
type Report struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percent

	TotalPL        float64
	TotalReturnPct float64
	AvgWin         float64
	AvgLoss        float64
	LargestWin     float64
	LargestLoss    float64

	// ProfitFactor is 0 when the history has no losing trades. A
	// no-loss run and a no-trade run are indistinguishable here; see
	// HasLosses to tell them apart.
	ProfitFactor float64
	HasLosses    bool

	MaxDrawdownPct float64
	SharpeRatio    float64

	InitialCapital float64
	FinalCapital   float64
}

// tradingDays is the annualization constant for the Sharpe ratio.
const tradingDays = 252

// Compute derives a Report from a closed-trade set and its equity curve. It
// is a pure function: degenerate inputs (no trades, flat returns, no losses)
// yield zero-valued sentinels rather than errors.
func Compute(trades []ledger.Trade, curve []EquityPoint, initialCapital, finalCapital float64) Report {
	r := Report{
		TotalTrades:    len(trades),
		InitialCapital: initialCapital,
		FinalCapital:   finalCapital,
	}
	if initialCapital != 0 {
		r.TotalReturnPct = (finalCapital - initialCapital) / initialCapital * 100
	}

	if len(trades) == 0 {
		return r
	}

	var winSum, lossSum float64
	for _, t := range trades {
		r.TotalPL += t.ProfitLoss

		// Break-even trades count as losers.
		if t.ProfitLoss > 0 {
			r.WinningTrades++
			winSum += t.ProfitLoss
			if t.ProfitLoss > r.LargestWin {
				r.LargestWin = t.ProfitLoss
			}
		} else {
			r.LosingTrades++
			lossSum += t.ProfitLoss
			if t.ProfitLoss < r.LargestLoss {
				r.LargestLoss = t.ProfitLoss
			}
		}
	}

	r.WinRate = float64(r.WinningTrades) / float64(r.TotalTrades) * 100
	if r.WinningTrades > 0 {
		r.AvgWin = winSum / float64(r.WinningTrades)
	}
	if r.LosingTrades > 0 {
		r.AvgLoss = lossSum / float64(r.LosingTrades)
	}
	if lossSum != 0 {
		r.HasLosses = true
		r.ProfitFactor = math.Abs(winSum / lossSum)
	}

	r.MaxDrawdownPct = MaxDrawdown(curve)
	r.SharpeRatio = Sharpe(curve)

	return r
}

// MaxDrawdown returns the most negative percentage decline of equity from
// its running peak. Fewer than 2 points yields 0.
func MaxDrawdown(curve []EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}

	var maxDD float64
	runningMax := curve[0].Equity
	for _, p := range curve {
		if p.Equity > runningMax {
			runningMax = p.Equity
		}
		if runningMax <= 0 {
			continue
		}
		dd := (p.Equity - runningMax) / runningMax * 100
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Sharpe annualizes the mean/stddev ratio of per-bar percentage returns.
// A single-sample curve or zero-variance returns yield 0.
func Sharpe(curve []EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			continue
		}
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, v := range returns {
		mean += v
	}
	mean /= float64(len(returns))

	var variance float64
	for _, v := range returns {
		d := v - mean
		variance += d * d
	}
	// Sample standard deviation, matching the usual convention for
	// return series.
	variance /= float64(len(returns) - 1)

	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(tradingDays)
}
