package journal

import (
	"github.com/Slidrive/prismtrade/ledger"
)

// TradeStore is the persistence capability for trade lifecycle state. The
// live engine assumes at most one in-flight mutation per trade id; stronger
// guarantees belong to the implementation.
type TradeStore interface {
	// CreateTrade persists a new trade row.
	CreateTrade(t *ledger.Trade) error

	// GetTrade returns the trade with the given id, or an error wrapping
	// ledger.ErrNotFound.
	GetTrade(id string) (ledger.Trade, error)

	// UpdateTrade rewrites the row for t.ID, or returns an error wrapping
	// ledger.ErrNotFound.
	UpdateTrade(t *ledger.Trade) error

	// ListOpen returns open trades in the given mode, oldest entry first.
	ListOpen(mode ledger.Mode) ([]ledger.Trade, error)

	// ListClosed returns closed trades in the given mode ordered by exit
	// time descending, capped at limit (limit <= 0 means no cap).
	ListClosed(mode ledger.Mode, limit int) ([]ledger.Trade, error)

	Close() error
}
