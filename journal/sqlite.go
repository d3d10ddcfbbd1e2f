package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Slidrive/prismtrade/ledger"
)

// SQLiteStore persists trades in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) CreateTrade(t *ledger.Trade) error {
	_, err := s.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, side, status, mode, strategy_id,
		 entry_time, entry_price, size,
		 exit_time, exit_price, stop_loss, take_profit,
		 fees, profit_loss, profit_loss_pct, exit_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, t.Side.String(), t.Status.String(), t.Mode.String(), t.StrategyID,
		t.EntryTime, t.EntryPrice, t.Size,
		nullTime(t), nullExit(t), fptr(t.StopLoss), fptr(t.TakeProfit),
		t.Fees, t.ProfitLoss, t.ProfitLossPct, t.ExitReason,
	)
	return err
}

func (s *SQLiteStore) GetTrade(id string) (ledger.Trade, error) {
	row := s.db.QueryRow(selectCols+` WHERE trade_id = ?`, id)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return ledger.Trade{}, fmt.Errorf("trade %q: %w", id, ledger.ErrNotFound)
	}
	return t, err
}

func (s *SQLiteStore) UpdateTrade(t *ledger.Trade) error {
	res, err := s.db.Exec(`
		UPDATE trades SET
			symbol = ?, side = ?, status = ?, mode = ?, strategy_id = ?,
			entry_time = ?, entry_price = ?, size = ?,
			exit_time = ?, exit_price = ?, stop_loss = ?, take_profit = ?,
			fees = ?, profit_loss = ?, profit_loss_pct = ?, exit_reason = ?
		WHERE trade_id = ?`,
		t.Symbol, t.Side.String(), t.Status.String(), t.Mode.String(), t.StrategyID,
		t.EntryTime, t.EntryPrice, t.Size,
		nullTime(t), nullExit(t), fptr(t.StopLoss), fptr(t.TakeProfit),
		t.Fees, t.ProfitLoss, t.ProfitLossPct, t.ExitReason,
		t.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", t.ID, ledger.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) ListOpen(mode ledger.Mode) ([]ledger.Trade, error) {
	rows, err := s.db.Query(
		selectCols+` WHERE status = 'open' AND mode = ? ORDER BY entry_time ASC`,
		mode.String(),
	)
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}

func (s *SQLiteStore) ListClosed(mode ledger.Mode, limit int) ([]ledger.Trade, error) {
	q := selectCols + ` WHERE status = 'closed' AND mode = ? ORDER BY exit_time DESC`
	args := []any{mode.String()}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	return scanTrades(rows)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectCols = `
	SELECT trade_id, symbol, side, status, mode, strategy_id,
	       entry_time, entry_price, size,
	       exit_time, exit_price, stop_loss, take_profit,
	       fees, profit_loss, profit_loss_pct, exit_reason
	FROM trades`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (ledger.Trade, error) {
	var (
		t          ledger.Trade
		side       string
		status     string
		mode       string
		exitTime   sql.NullTime
		exitPrice  sql.NullFloat64
		stopLoss   sql.NullFloat64
		takeProfit sql.NullFloat64
	)

	err := row.Scan(
		&t.ID, &t.Symbol, &side, &status, &mode, &t.StrategyID,
		&t.EntryTime, &t.EntryPrice, &t.Size,
		&exitTime, &exitPrice, &stopLoss, &takeProfit,
		&t.Fees, &t.ProfitLoss, &t.ProfitLossPct, &t.ExitReason,
	)
	if err != nil {
		return ledger.Trade{}, err
	}

	if t.Side, err = ledger.ParseSide(side); err != nil {
		return ledger.Trade{}, err
	}
	if t.Status, err = ledger.ParseStatus(status); err != nil {
		return ledger.Trade{}, err
	}
	if t.Mode, err = ledger.ParseMode(mode); err != nil {
		return ledger.Trade{}, err
	}

	if exitTime.Valid {
		t.ExitTime = exitTime.Time
	}
	if exitPrice.Valid {
		t.ExitPrice = exitPrice.Float64
	}
	if stopLoss.Valid {
		v := stopLoss.Float64
		t.StopLoss = &v
	}
	if takeProfit.Valid {
		v := takeProfit.Float64
		t.TakeProfit = &v
	}

	return t, nil
}

func scanTrades(rows *sql.Rows) ([]ledger.Trade, error) {
	defer rows.Close()

	var out []ledger.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullTime(t *ledger.Trade) any {
	if t.Status == ledger.StatusClosed {
		return t.ExitTime
	}
	return nil
}

func nullExit(t *ledger.Trade) any {
	if t.Status == ledger.StatusClosed {
		return t.ExitPrice
	}
	return nil
}

func fptr(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
