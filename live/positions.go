package live

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Slidrive/prismtrade/ledger"
)

// Position is an open trade marked against the current market price.
type Position struct {
	TradeID         string
	Symbol          string
	Side            ledger.Side
	EntryPrice      float64
	CurrentPrice    float64
	Amount          float64
	UnrealizedPL    float64
	UnrealizedPLPct float64
	StopLoss        *float64
	TakeProfit      *float64
	EntryTime       time.Time
}

// OpenPositions lists every open trade in the engine's mode with its
// unrealized P&L. A trade whose ticker fetch fails is skipped rather than
// failing the whole listing; one bad symbol must not hide the rest.
func (e *Engine) OpenPositions(ctx context.Context) ([]Position, error) {
	trades, err := e.store.ListOpen(e.cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("open positions: %w", err)
	}

	positions := make([]Position, 0, len(trades))
	for _, t := range trades {
		ticker, err := e.exchange.GetTicker(ctx, t.Symbol)
		if err != nil {
			e.log.Warn("skipping position, ticker fetch failed",
				zap.String("trade_id", t.ID),
				zap.String("symbol", t.Symbol),
				zap.Error(err),
			)
			continue
		}

		positions = append(positions, Position{
			TradeID:         t.ID,
			Symbol:          t.Symbol,
			Side:            t.Side,
			EntryPrice:      t.EntryPrice,
			CurrentPrice:    ticker.LastPrice,
			Amount:          t.Size,
			UnrealizedPL:    t.UnrealizedPL(ticker.LastPrice),
			UnrealizedPLPct: t.UnrealizedPLPct(ticker.LastPrice),
			StopLoss:        t.StopLoss,
			TakeProfit:      t.TakeProfit,
			EntryTime:       t.EntryTime,
		})
	}
	return positions, nil
}

// Action is a trigger-check directive.
type Action int8

const (
	ActionNone Action = iota
	ActionClose
)

func (a Action) String() string {
	if a == ActionClose {
		return "close"
	}
	return "none"
}

// AdviceReason tags why a trigger check resolved the way it did.
type AdviceReason string

const (
	ReasonNoTrigger     AdviceReason = "no_trigger"
	ReasonTradeNotFound AdviceReason = "trade_not_found"
	ReasonCheckError    AdviceReason = "error"
)

// Advice is the result of a stop-loss/take-profit check. It is purely
// advisory; the caller decides whether to invoke ClosePosition.
type Advice struct {
	Action       Action
	Reason       AdviceReason
	CurrentPrice float64
	TriggerPrice float64
}

// CheckStopTakeProfit fetches the current price and reports whether the
// trade's stop-loss or take-profit level has been hit. It never mutates
// state. A missing or already-closed trade yields a trade_not_found advice
// rather than an error; a failed price fetch yields an error advice plus
// the underlying error.
func (e *Engine) CheckStopTakeProfit(ctx context.Context, tradeID string) (Advice, error) {
	trade, err := e.store.GetTrade(tradeID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return Advice{Action: ActionNone, Reason: ReasonTradeNotFound}, nil
		}
		return Advice{Action: ActionNone, Reason: ReasonCheckError}, fmt.Errorf("check triggers %q: %w", tradeID, err)
	}
	if trade.Status != ledger.StatusOpen {
		return Advice{Action: ActionNone, Reason: ReasonTradeNotFound}, nil
	}

	ticker, err := e.exchange.GetTicker(ctx, trade.Symbol)
	if err != nil {
		return Advice{Action: ActionNone, Reason: ReasonCheckError}, fmt.Errorf("check triggers %q: get ticker: %w", tradeID, err)
	}
	current := ticker.LastPrice

	if trade.StopLoss != nil && current <= *trade.StopLoss {
		return Advice{
			Action:       ActionClose,
			Reason:       AdviceReason(ReasonStopLoss),
			CurrentPrice: current,
			TriggerPrice: *trade.StopLoss,
		}, nil
	}

	if trade.TakeProfit != nil && current >= *trade.TakeProfit {
		return Advice{
			Action:       ActionClose,
			Reason:       AdviceReason(ReasonTakeProfit),
			CurrentPrice: current,
			TriggerPrice: *trade.TakeProfit,
		}, nil
	}

	return Advice{Action: ActionNone, Reason: ReasonNoTrigger, CurrentPrice: current}, nil
}

// ClosePosition looks up an open trade and sells its original entry amount,
// tagging the close with the supplied reason.
func (e *Engine) ClosePosition(ctx context.Context, tradeID, reason string) (SellResult, error) {
	trade, err := e.store.GetTrade(tradeID)
	if err != nil {
		return SellResult{}, fmt.Errorf("close position %q: %w", tradeID, err)
	}
	if trade.Status != ledger.StatusOpen {
		return SellResult{}, fmt.Errorf("close position %q: %w", tradeID, ledger.ErrAlreadyClosed)
	}

	if reason == "" {
		reason = ReasonManualClose
	}

	return e.ExecuteSell(ctx, SellRequest{
		Symbol:  trade.Symbol,
		Amount:  trade.Size,
		TradeID: tradeID,
		Reason:  reason,
	})
}

// TradeHistory returns closed trades in the engine's mode, most recently
// closed first. A non-positive limit defaults to 50.
func (e *Engine) TradeHistory(ctx context.Context, limit int) ([]ledger.Trade, error) {
	if limit <= 0 {
		limit = 50
	}
	trades, err := e.store.ListClosed(e.cfg.Mode, limit)
	if err != nil {
		return nil, fmt.Errorf("trade history: %w", err)
	}
	return trades, nil
}
