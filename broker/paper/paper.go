package paper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Slidrive/prismtrade/broker"
	"github.com/Slidrive/prismtrade/internal/id"
	"github.com/Slidrive/prismtrade/market"
)

// ErrNoPrice is returned when no price has been set for a symbol.
var ErrNoPrice = errors.New("no price for symbol")

// Exchange is an in-memory exchange simulator. Orders fill immediately at
// the last known price. It backs paper-mode trading and tests.
type Exchange struct {
	mu     sync.RWMutex
	prices map[string]market.Ticker
}

func New() *Exchange {
	return &Exchange{prices: make(map[string]market.Ticker)}
}

// SetPrice publishes the current price for a symbol.
func (e *Exchange) SetPrice(symbol string, price float64, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prices[symbol] = market.Ticker{Symbol: symbol, LastPrice: price, Time: at}
}

func (e *Exchange) GetTicker(ctx context.Context, symbol string) (market.Ticker, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.prices[symbol]
	if !ok {
		return market.Ticker{}, fmt.Errorf("get ticker %q: %w", symbol, ErrNoPrice)
	}
	return t, nil
}

func (e *Exchange) MarketBuy(ctx context.Context, symbol string, amount float64) (broker.Order, error) {
	return e.fill(symbol, amount)
}

func (e *Exchange) MarketSell(ctx context.Context, symbol string, amount float64) (broker.Order, error) {
	return e.fill(symbol, amount)
}

func (e *Exchange) fill(symbol string, amount float64) (broker.Order, error) {
	if amount <= 0 {
		return broker.Order{}, fmt.Errorf("order amount must be positive, got %v", amount)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.prices[symbol]
	if !ok {
		return broker.Order{}, fmt.Errorf("fill %q: %w", symbol, ErrNoPrice)
	}

	return broker.Order{
		ID:     id.New(),
		Symbol: symbol,
		Amount: amount,
		Price:  t.LastPrice,
	}, nil
}
