package market

import (
	"context"
	"time"
)

// Ticker is the current market price of a symbol.
type Ticker struct {
	Symbol    string
	LastPrice float64
	Time      time.Time
}

// TickerSource provides current prices. Exchange clients and the paper
// broker both satisfy it.
type TickerSource interface {
	GetTicker(ctx context.Context, symbol string) (Ticker, error)
}
