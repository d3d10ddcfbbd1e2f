package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseBuySide(t *testing.T) {
	t.Parallel()

	entry := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(time.Hour)

	tr := Open("T1", "BTC/USD", Buy, entry, 100, 1)
	require.Equal(t, StatusOpen, tr.Status)

	require.NoError(t, tr.Close(exit, 110, 0.001))

	assert.Equal(t, StatusClosed, tr.Status)
	assert.Equal(t, exit, tr.ExitTime)
	assert.InDelta(t, 110.0, tr.ExitPrice, 1e-9)

	// gross 10, fees 0.001*(100+110) = 0.21
	assert.InDelta(t, 0.21, tr.Fees, 1e-9)
	assert.InDelta(t, 9.79, tr.ProfitLoss, 1e-9)
	assert.InDelta(t, 9.79, tr.ProfitLossPct, 1e-9)
}

func TestCloseSellSide(t *testing.T) {
	t.Parallel()

	entry := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tr := Open("T2", "ETH/USD", Sell, entry, 100, 2)
	require.NoError(t, tr.Close(entry.Add(time.Hour), 90, 0))

	// short gains when price falls: (100-90)*2
	assert.InDelta(t, 20.0, tr.ProfitLoss, 1e-9)
	assert.InDelta(t, 10.0, tr.ProfitLossPct, 1e-9)
}

func TestCloseTwiceRejected(t *testing.T) {
	t.Parallel()

	entry := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tr := Open("T3", "BTC/USD", Buy, entry, 100, 1)
	require.NoError(t, tr.Close(entry.Add(time.Hour), 110, 0.001))

	first := *tr
	err := tr.Close(entry.Add(2*time.Hour), 200, 0.001)
	assert.ErrorIs(t, err, ErrAlreadyClosed)

	// Record must be untouched by the rejected second close.
	assert.Equal(t, first, *tr)
}

func TestUnrealizedPL(t *testing.T) {
	t.Parallel()

	entry := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	long := Open("T4", "BTC/USD", Buy, entry, 100, 2)
	assert.InDelta(t, 10.0, long.UnrealizedPL(105), 1e-9)
	assert.InDelta(t, 5.0, long.UnrealizedPLPct(105), 1e-9)

	short := Open("T5", "BTC/USD", Sell, entry, 100, 2)
	assert.InDelta(t, -10.0, short.UnrealizedPL(105), 1e-9)
	assert.InDelta(t, -5.0, short.UnrealizedPLPct(105), 1e-9)
}

func TestSizeForRisk(t *testing.T) {
	t.Parallel()

	// 2% of 10000 at price 100 buys 2 units
	assert.InDelta(t, 2.0, SizeForRisk(10000, 2, 100), 1e-9)
	assert.Zero(t, SizeForRisk(10000, 2, 0))
}

func TestEnumRoundTrip(t *testing.T) {
	t.Parallel()

	side, err := ParseSide(Sell.String())
	require.NoError(t, err)
	assert.Equal(t, Sell, side)

	status, err := ParseStatus(StatusClosed.String())
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, status)

	mode, err := ParseMode(Live.String())
	require.NoError(t, err)
	assert.Equal(t, Live, mode)

	_, err = ParseSide("hold")
	assert.Error(t, err)
}
