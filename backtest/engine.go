package backtest

import (
	"fmt"
	"time"

	"github.com/Slidrive/prismtrade/ledger"
	"github.com/Slidrive/prismtrade/stats"
)

// Config controls one backtest run.
type Config struct {
	InitialCapital float64
	FeeRate        float64 // fraction of notional charged per leg, e.g. 0.001
	MaxPositions   int
	RiskPct        float64 // percent of capital committed per entry
}

func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %v", c.InitialCapital)
	}
	if c.FeeRate < 0 {
		return fmt.Errorf("fee rate must not be negative, got %v", c.FeeRate)
	}
	if c.MaxPositions <= 0 {
		return fmt.Errorf("max positions must be positive, got %d", c.MaxPositions)
	}
	if c.RiskPct <= 0 || c.RiskPct > 100 {
		return fmt.Errorf("risk percent must be in (0,100], got %v", c.RiskPct)
	}
	return nil
}

// Engine replays opens and closes against a capital pool. One engine owns
// one run; it is not safe for concurrent use and is not reused across runs.
type Engine struct {
	cfg     Config
	capital float64

	// Open positions in insertion order. Closes pop the earliest entry.
	positions []*ledger.Trade
	closed    []ledger.Trade
	curve     []stats.EquityPoint

	nextID int
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		capital: cfg.InitialCapital,
	}
}

func (e *Engine) Capital() float64                 { return e.capital }
func (e *Engine) NumOpen() int                     { return len(e.positions) }
func (e *Engine) ClosedTrades() []ledger.Trade     { return e.closed }
func (e *Engine) EquityCurve() []stats.EquityPoint { return e.curve }

// CanOpenPosition reports whether the open set has room for another entry.
func (e *Engine) CanOpenPosition() bool {
	return len(e.positions) < e.cfg.MaxPositions
}

// OpenPosition opens a trade of the given size, debiting the entry notional
// from capital. Returns false without side effect when the position limit is
// reached or the notional exceeds available capital; exhaustion is a policy
// no-op, not an error.
func (e *Engine) OpenPosition(t time.Time, price float64, side ledger.Side, size float64) bool {
	if !e.CanOpenPosition() {
		return false
	}
	if size <= 0 {
		return false
	}

	notional := price * size
	if notional > e.capital {
		return false
	}

	e.nextID++
	trade := ledger.Open(fmt.Sprintf("BT-%06d", e.nextID), "", side, t, price, size)
	e.positions = append(e.positions, trade)
	e.capital -= notional
	return true
}

// OpenPositionRisk sizes the entry from a percentage of current capital.
func (e *Engine) OpenPositionRisk(t time.Time, price float64, side ledger.Side, riskPct float64) bool {
	return e.OpenPosition(t, price, side, ledger.SizeForRisk(e.capital, riskPct, price))
}

// ClosePosition closes the earliest-opened position at the given price,
// crediting exit notional plus realized P&L back to capital. Returns false
// when no position is open.
func (e *Engine) ClosePosition(t time.Time, price float64, reason string) bool {
	if len(e.positions) == 0 {
		return false
	}

	trade := e.positions[0]
	if err := trade.Close(t, price, e.cfg.FeeRate); err != nil {
		return false
	}
	trade.ExitReason = reason

	e.capital += trade.ExitPrice*trade.Size + trade.ProfitLoss
	e.closed = append(e.closed, *trade)
	e.positions = e.positions[1:]
	return true
}

// UpdateEquity appends one equity-curve sample: capital plus unrealized P&L
// of all open positions valued at the given price.
func (e *Engine) UpdateEquity(t time.Time, price float64) {
	equity := e.capital
	for _, p := range e.positions {
		equity += p.UnrealizedPL(price)
	}
	e.curve = append(e.curve, stats.EquityPoint{Time: t, Equity: equity})
}

// Stats derives the performance report for the run so far.
func (e *Engine) Stats() stats.Report {
	return stats.Compute(e.closed, e.curve, e.cfg.InitialCapital, e.capital)
}
