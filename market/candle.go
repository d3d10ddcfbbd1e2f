package market

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
// for one bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
