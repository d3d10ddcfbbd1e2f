package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slidrive/prismtrade/ledger"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "trades.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func openTrade(id string, entry time.Time) *ledger.Trade {
	t := ledger.Open(id, "BTC/USD", ledger.Buy, entry, 100, 1)
	t.Mode = ledger.Paper
	t.StrategyID = "manual"
	return t
}

func TestSQLiteCreateGetRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	entry := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	stop := 95.0
	take := 110.0
	tr := openTrade("T1", entry)
	tr.StopLoss = &stop
	tr.TakeProfit = &take
	require.NoError(t, s.CreateTrade(tr))

	got, err := s.GetTrade("T1")
	require.NoError(t, err)

	assert.Equal(t, "T1", got.ID)
	assert.Equal(t, ledger.Buy, got.Side)
	assert.Equal(t, ledger.StatusOpen, got.Status)
	assert.Equal(t, ledger.Paper, got.Mode)
	assert.Equal(t, "manual", got.StrategyID)
	assert.True(t, got.EntryTime.Equal(entry))
	assert.InDelta(t, 100.0, got.EntryPrice, 1e-9)
	require.NotNil(t, got.StopLoss)
	assert.InDelta(t, 95.0, *got.StopLoss, 1e-9)
	require.NotNil(t, got.TakeProfit)
	assert.InDelta(t, 110.0, *got.TakeProfit, 1e-9)

	// Exit columns stay NULL while the trade is open.
	assert.True(t, got.ExitTime.IsZero())
	assert.Zero(t, got.ExitPrice)
}

func TestSQLiteGetMissing(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.GetTrade("nope")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestSQLiteUpdateClose(t *testing.T) {
	s := newSQLiteStore(t)
	entry := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tr := openTrade("T1", entry)
	require.NoError(t, s.CreateTrade(tr))

	require.NoError(t, tr.Close(entry.Add(time.Hour), 110, 0.001))
	tr.ExitReason = "manual_close"
	require.NoError(t, s.UpdateTrade(tr))

	got, err := s.GetTrade("T1")
	require.NoError(t, err)

	assert.Equal(t, ledger.StatusClosed, got.Status)
	assert.True(t, got.ExitTime.Equal(entry.Add(time.Hour)))
	assert.InDelta(t, 110.0, got.ExitPrice, 1e-9)
	assert.InDelta(t, 0.21, got.Fees, 1e-9)
	assert.InDelta(t, 9.79, got.ProfitLoss, 1e-9)
	assert.Equal(t, "manual_close", got.ExitReason)
}

func TestSQLiteUpdateMissing(t *testing.T) {
	s := newSQLiteStore(t)

	tr := openTrade("ghost", time.Now().UTC())
	assert.ErrorIs(t, s.UpdateTrade(tr), ledger.ErrNotFound)
}

func TestSQLiteCreateDuplicateRejected(t *testing.T) {
	s := newSQLiteStore(t)

	tr := openTrade("T1", time.Now().UTC())
	require.NoError(t, s.CreateTrade(tr))
	assert.Error(t, s.CreateTrade(tr))
}

func TestSQLiteListOpenFiltersModeAndStatus(t *testing.T) {
	s := newSQLiteStore(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	a := openTrade("A", base.Add(2*time.Hour))
	b := openTrade("B", base.Add(time.Hour))
	require.NoError(t, s.CreateTrade(a))
	require.NoError(t, s.CreateTrade(b))

	liveTr := openTrade("L", base)
	liveTr.Mode = ledger.Live
	require.NoError(t, s.CreateTrade(liveTr))

	closedTr := openTrade("C", base)
	require.NoError(t, closedTr.Close(base.Add(time.Hour), 105, 0))
	require.NoError(t, s.CreateTrade(closedTr))

	open, err := s.ListOpen(ledger.Paper)
	require.NoError(t, err)
	require.Len(t, open, 2)

	// Oldest entry first.
	assert.Equal(t, "B", open[0].ID)
	assert.Equal(t, "A", open[1].ID)
}

func TestSQLiteListClosedOrderAndLimit(t *testing.T) {
	s := newSQLiteStore(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"T1", "T2", "T3"} {
		tr := openTrade(id, base)
		require.NoError(t, tr.Close(base.Add(time.Duration(i+1)*time.Hour), 105, 0))
		require.NoError(t, s.CreateTrade(tr))
	}

	closed, err := s.ListClosed(ledger.Paper, 0)
	require.NoError(t, err)
	require.Len(t, closed, 3)

	// Most recently closed first.
	assert.Equal(t, "T3", closed[0].ID)
	assert.Equal(t, "T1", closed[2].ID)

	closed, err = s.ListClosed(ledger.Paper, 2)
	require.NoError(t, err)
	require.Len(t, closed, 2)
	assert.Equal(t, "T3", closed[0].ID)
}
