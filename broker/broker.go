package broker

import (
	"context"

	"github.com/Slidrive/prismtrade/market"
)

// Exchange is the execution capability the live engine depends on. All
// methods may fail with connectivity or authorization errors; none retry.
type Exchange interface {
	market.TickerSource

	MarketBuy(ctx context.Context, symbol string, amount float64) (Order, error)
	MarketSell(ctx context.Context, symbol string, amount float64) (Order, error)
}

// Order is an accepted market order fill.
type Order struct {
	ID     string
	Symbol string
	Amount float64
	Price  float64
}
