package ledger

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAlreadyClosed is returned when Close is called on a closed trade.
	ErrAlreadyClosed = errors.New("trade already closed")

	// ErrNotFound is returned by stores when a trade id does not exist.
	ErrNotFound = errors.New("trade not found")
)

// Side is the direction of the opening action.
type Side int8

const (
	Buy  Side = +1
	Sell Side = -1
)

func (s Side) String() string {
	if s == Sell {
		return "sell"
	}
	return "buy"
}

// Status tracks the trade lifecycle. A trade is created Open, closed exactly
// once, and never re-opened.
type Status int8

const (
	StatusOpen Status = iota
	StatusClosed
)

func (s Status) String() string {
	if s == StatusClosed {
		return "closed"
	}
	return "open"
}

// Mode distinguishes simulated from real-money execution. Accounting rules
// are identical in both.
type Mode int8

const (
	Paper Mode = iota
	Live
)

func (m Mode) String() string {
	if m == Live {
		return "live"
	}
	return "paper"
}

// Trade is one open-to-close position record. Entry fields are immutable
// after Open; exit fields are written exactly once by Close.
type Trade struct {
	ID         string
	Symbol     string
	Side       Side
	Status     Status
	Mode       Mode
	StrategyID string

	EntryTime  time.Time
	EntryPrice float64
	Size       float64

	ExitTime  time.Time
	ExitPrice float64

	// Optional trigger levels, set at open in live mode.
	StopLoss   *float64
	TakeProfit *float64

	// Realized at close.
	Fees          float64
	ProfitLoss    float64
	ProfitLossPct float64
	ExitReason    string
}

// Open creates a new open trade.
func Open(id, symbol string, side Side, t time.Time, price, size float64) *Trade {
	return &Trade{
		ID:         id,
		Symbol:     symbol,
		Side:       side,
		Status:     StatusOpen,
		EntryTime:  t,
		EntryPrice: price,
		Size:       size,
	}
}

// SizeForRisk derives a position size from a percentage of available capital:
// size = (capital * riskPct/100) / price.
func SizeForRisk(capital, riskPct, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return capital * (riskPct / 100) / price
}

// Close realizes the trade at the given exit price. Fees are charged on both
// legs' notional, symmetric regardless of side:
//
//	fees = (entryPrice*size + exitPrice*size) * feeRate
//
// Calling Close on an already closed trade returns ErrAlreadyClosed and
// leaves the record untouched.
func (t *Trade) Close(at time.Time, price, feeRate float64) error {
	if t.Status == StatusClosed {
		return fmt.Errorf("close trade %q: %w", t.ID, ErrAlreadyClosed)
	}

	gross := t.GrossPL(price)
	fees := (t.EntryPrice*t.Size + price*t.Size) * feeRate

	t.ExitTime = at
	t.ExitPrice = price
	t.Fees = fees
	t.ProfitLoss = gross - fees
	if notional := t.EntryPrice * t.Size; notional != 0 {
		t.ProfitLossPct = t.ProfitLoss / notional * 100
	}
	t.Status = StatusClosed
	return nil
}

// GrossPL is the directional P&L before fees at the given price.
// Long: (price-entry)*size, short: (entry-price)*size.
func (t *Trade) GrossPL(price float64) float64 {
	return float64(t.Side) * (price - t.EntryPrice) * t.Size
}

// UnrealizedPL marks an open trade against the current price, net of nothing;
// fees are only charged at close.
func (t *Trade) UnrealizedPL(currentPrice float64) float64 {
	return t.GrossPL(currentPrice)
}

// UnrealizedPLPct is UnrealizedPL relative to entry notional, in percent.
func (t *Trade) UnrealizedPLPct(currentPrice float64) float64 {
	notional := t.EntryPrice * t.Size
	if notional == 0 {
		return 0
	}
	return t.UnrealizedPL(currentPrice) / notional * 100
}

// Notional is price * size at entry.
func (t *Trade) Notional() float64 {
	return t.EntryPrice * t.Size
}
