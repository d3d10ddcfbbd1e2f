package live

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Slidrive/prismtrade/broker"
	"github.com/Slidrive/prismtrade/internal/id"
	"github.com/Slidrive/prismtrade/journal"
	"github.com/Slidrive/prismtrade/ledger"
)

// Exit reasons recorded on live closes.
const (
	ReasonManualClose = "manual_close"
	ReasonStopLoss    = "stop_loss_hit"
	ReasonTakeProfit  = "take_profit_hit"
)

// Config tunes one engine instance.
type Config struct {
	// Mode tags every trade the engine creates (Paper or Live).
	Mode ledger.Mode

	// FeeRate is the fraction of notional charged per leg at close.
	FeeRate float64
}

// Engine mirrors the backtest accounting rules against real order fills.
// Every operation is synchronous and request-scoped: one ticker fetch, at
// most one order submission, no retries. Exchange or order failures
// propagate before any ledger row is written, so a failed call never leaves
// a half-written trade behind.
type Engine struct {
	exchange broker.Exchange
	store    journal.TradeStore
	cfg      Config
	log      *zap.Logger
}

func New(exchange broker.Exchange, store journal.TradeStore, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		exchange: exchange,
		store:    store,
		cfg:      cfg,
		log:      log,
	}
}

// BuyRequest opens a position with a market buy. StopLossPct/TakeProfitPct
// are percentage offsets from the fetched entry price; zero means no
// trigger.
type BuyRequest struct {
	Symbol        string
	Amount        float64
	StrategyID    string
	StopLossPct   float64
	TakeProfitPct float64
}

// BuyResult is the created trade plus the exchange order id and the
// computed trigger prices.
type BuyResult struct {
	Trade      ledger.Trade
	OrderID    string
	StopLoss   *float64
	TakeProfit *float64
}

// ExecuteBuy fetches the current price, submits a market buy, computes
// stop/take trigger levels from the entry price, and persists the new open
// trade.
func (e *Engine) ExecuteBuy(ctx context.Context, req BuyRequest) (BuyResult, error) {
	if req.Symbol == "" {
		return BuyResult{}, errors.New("execute buy: symbol is required")
	}
	if req.Amount <= 0 {
		return BuyResult{}, fmt.Errorf("execute buy: amount must be positive, got %v", req.Amount)
	}

	ticker, err := e.exchange.GetTicker(ctx, req.Symbol)
	if err != nil {
		return BuyResult{}, fmt.Errorf("execute buy %s: get ticker: %w", req.Symbol, err)
	}
	entryPrice := ticker.LastPrice

	order, err := e.exchange.MarketBuy(ctx, req.Symbol, req.Amount)
	if err != nil {
		return BuyResult{}, fmt.Errorf("execute buy %s: %w", req.Symbol, err)
	}

	var stopLoss, takeProfit *float64
	if req.StopLossPct > 0 {
		v := entryPrice * (1 - req.StopLossPct/100)
		stopLoss = &v
	}
	if req.TakeProfitPct > 0 {
		v := entryPrice * (1 + req.TakeProfitPct/100)
		takeProfit = &v
	}

	trade := ledger.Open(id.New(), req.Symbol, ledger.Buy, tickTime(ticker.Time), entryPrice, req.Amount)
	trade.Mode = e.cfg.Mode
	trade.StrategyID = req.StrategyID
	trade.StopLoss = stopLoss
	trade.TakeProfit = takeProfit

	if err := e.store.CreateTrade(trade); err != nil {
		return BuyResult{}, fmt.Errorf("execute buy %s: record trade: %w", req.Symbol, err)
	}

	e.log.Info("buy executed",
		zap.String("trade_id", trade.ID),
		zap.String("symbol", req.Symbol),
		zap.String("order_id", order.ID),
		zap.Float64("entry_price", entryPrice),
		zap.Float64("amount", req.Amount),
	)

	return BuyResult{
		Trade:      *trade,
		OrderID:    order.ID,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
	}, nil
}

// SellRequest closes (or just sells, when TradeID is empty) via a market
// sell. An empty TradeID executes the sell without touching the ledger.
type SellRequest struct {
	Symbol  string
	Amount  float64
	TradeID string
	Reason  string
}

// SellResult reports the executed sell and, when a trade was closed, the
// updated record.
type SellResult struct {
	OrderID   string
	ExitPrice float64
	Amount    float64
	Trade     *ledger.Trade
}

// ExecuteSell fetches the current price and submits a market sell. When a
// trade id is supplied the persisted row is closed with realized P&L; a
// missing or already-closed row is reported after the sell as a distinct
// error.
func (e *Engine) ExecuteSell(ctx context.Context, req SellRequest) (SellResult, error) {
	if req.Symbol == "" {
		return SellResult{}, errors.New("execute sell: symbol is required")
	}
	if req.Amount <= 0 {
		return SellResult{}, fmt.Errorf("execute sell: amount must be positive, got %v", req.Amount)
	}

	ticker, err := e.exchange.GetTicker(ctx, req.Symbol)
	if err != nil {
		return SellResult{}, fmt.Errorf("execute sell %s: get ticker: %w", req.Symbol, err)
	}
	exitPrice := ticker.LastPrice

	order, err := e.exchange.MarketSell(ctx, req.Symbol, req.Amount)
	if err != nil {
		return SellResult{}, fmt.Errorf("execute sell %s: %w", req.Symbol, err)
	}

	result := SellResult{
		OrderID:   order.ID,
		ExitPrice: exitPrice,
		Amount:    req.Amount,
	}

	if req.TradeID == "" {
		e.log.Info("sell executed",
			zap.String("symbol", req.Symbol),
			zap.String("order_id", order.ID),
			zap.Float64("exit_price", exitPrice),
		)
		return result, nil
	}

	trade, err := e.store.GetTrade(req.TradeID)
	if err != nil {
		return result, fmt.Errorf("execute sell %s: %w", req.Symbol, err)
	}

	reason := req.Reason
	if reason == "" {
		reason = ReasonManualClose
	}

	if err := trade.Close(tickTime(ticker.Time), exitPrice, e.cfg.FeeRate); err != nil {
		return result, fmt.Errorf("execute sell %s: %w", req.Symbol, err)
	}
	trade.ExitReason = reason

	if err := e.store.UpdateTrade(&trade); err != nil {
		return result, fmt.Errorf("execute sell %s: record close: %w", req.Symbol, err)
	}
	result.Trade = &trade

	e.log.Info("position closed",
		zap.String("trade_id", trade.ID),
		zap.String("symbol", req.Symbol),
		zap.String("order_id", order.ID),
		zap.Float64("exit_price", exitPrice),
		zap.Float64("profit_loss", trade.ProfitLoss),
		zap.String("reason", reason),
	)

	return result, nil
}

func tickTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
