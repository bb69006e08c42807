package strategies

import (
	"math"

	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// undefinedBar reports whether the most recent bar carries undefined price
// data. Strategies hold rather than act on NaN input.
func undefinedBar(candles []*eventmodels.Candle) bool {
	c := candles[len(candles)-1]

	return math.IsNaN(c.Open) || math.IsNaN(c.High) || math.IsNaN(c.Low) || math.IsNaN(c.Close)
}

// crossConfidence maps the separation between two crossing lines to a
// confidence in [0.5, 1]: a fresh cross sits just above 0.5, a decisive one
// saturates at 1.
func crossConfidence(separation, reference float64) float64 {
	if reference == 0 {
		return 0.5
	}

	return 0.5 + math.Min(0.5, math.Abs(separation/reference)*10)
}
