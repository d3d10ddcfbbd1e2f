package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/Slidrive/prismtrade/ledger"
	"github.com/Slidrive/prismtrade/stats"
)

// CSVWriter exports closed trades and the equity curve to two CSV files.
// Backtest runs use it to leave an inspectable record on disk.
type CSVWriter struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVWriter, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	fail := func(err error) (*CSVWriter, error) {
		tf.Close()
		ef.Close()
		return nil, err
	}

	if err := tw.Write([]string{"trade_id", "symbol", "side", "size", "entry_price", "exit_price", "entry_time", "exit_time", "fees", "profit_loss", "profit_loss_pct", "exit_reason"}); err != nil {
		return fail(err)
	}
	if err := ew.Write([]string{"time", "equity"}); err != nil {
		return fail(err)
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return fail(err)
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return fail(err)
	}

	return &CSVWriter{tw, ew, tf, ef}, nil
}

func (w *CSVWriter) WriteTrade(t ledger.Trade) error {
	err := w.trades.Write([]string{
		t.ID,
		t.Symbol,
		t.Side.String(),
		f(t.Size),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.EntryTime.Format(time.RFC3339),
		t.ExitTime.Format(time.RFC3339),
		f(t.Fees),
		f(t.ProfitLoss),
		f(t.ProfitLossPct),
		t.ExitReason,
	})
	if err != nil {
		return err
	}
	w.trades.Flush()
	return w.trades.Error()
}

func (w *CSVWriter) WriteEquity(p stats.EquityPoint) error {
	err := w.equity.Write([]string{
		p.Time.Format(time.RFC3339),
		f(p.Equity),
	})
	if err != nil {
		return err
	}
	w.equity.Flush()
	return w.equity.Error()
}

func (w *CSVWriter) Close() error {
	w.trades.Flush()
	if err := w.trades.Error(); err != nil {
		return err
	}
	w.equity.Flush()
	if err := w.equity.Error(); err != nil {
		return err
	}

	if err := w.tf.Close(); err != nil {
		return err
	}
	return w.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
