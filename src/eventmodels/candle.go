package eventmodels

import (
	"math"
	"time"
)

// Candle is one daily OHLCV bar. The engine borrows candles read-only: the
// market data collaborator owns the slice and never mutates it mid-run.
type Candle struct {
	Timestamp  time.Time          `json:"timestamp"`
	Open       float64            `json:"open"`
	High       float64            `json:"high"`
	Low        float64            `json:"low"`
	Close      float64            `json:"close"`
	Volume     float64            `json:"volume"`
	Indicators map[string]float64 `json:"indicators,omitempty"`
}

// Indicator returns a provider-supplied indicator value by name. The second
// return is false when the value is missing or NaN, so callers fall back to
// HOLD instead of acting on undefined data.
func (c *Candle) Indicator(name string) (float64, bool) {
	if c.Indicators == nil {
		return 0, false
	}

	val, found := c.Indicators[name]
	if !found || math.IsNaN(val) {
		return 0, false
	}

	return val, true
}

func NewCandle(timestamp time.Time, open, high, low, close_, volume float64) *Candle {
	return &Candle{
		Timestamp: timestamp,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close_,
		Volume:    volume,
	}
}
