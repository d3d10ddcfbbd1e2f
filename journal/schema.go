package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	status TEXT NOT NULL,
	mode TEXT NOT NULL,
	strategy_id TEXT NOT NULL DEFAULT '',
	entry_time DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	size REAL NOT NULL,
	exit_time DATETIME,
	exit_price REAL,
	stop_loss REAL,
	take_profit REAL,
	fees REAL NOT NULL DEFAULT 0,
	profit_loss REAL NOT NULL DEFAULT 0,
	profit_loss_pct REAL NOT NULL DEFAULT 0,
	exit_reason TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_status_mode ON trades(status, mode);
CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time);
`
