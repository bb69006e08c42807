package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

const equalityThreshold = 1e-2

func TestRsi(t *testing.T) {
	t.Run("example rsi", func(t *testing.T) {
		// example taken from https://blog.quantinsti.com/rsi-indicator/
		rsi := NewRsi(14)
		closes := []float64{
			283.46, 280.69, 285.48, 294.08, 293.90, 299.92, 301.15, 284.45,
			294.09, 302.77, 301.97, 306.85, 305.02, 301.06, 291.97,
		}

		var val float64
		for i, close := range closes {
			val = rsi.Update(eventmodels.Candle{Close: close})
			if i < len(closes)-1 {
				assert.Equal(t, 0.0, val)
			}
		}

		expected := 55.37
		diff := math.Abs(val - expected)
		assert.Less(t, diff, equalityThreshold)

		// add new candle
		val = rsi.Update(eventmodels.Candle{Close: 284.18})

		expected = 50.07
		diff = math.Abs(val - expected)
		assert.Less(t, diff, equalityThreshold)

		// add another new candle
		val = rsi.Update(eventmodels.Candle{Close: 286.48})

		expected = 51.55
		diff = math.Abs(val - expected)
		assert.Less(t, diff, equalityThreshold)
	})

	t.Run("too few candles", func(t *testing.T) {
		rsi := NewRsi(14)
		val := rsi.Update(eventmodels.Candle{Close: 100.0})
		assert.Equal(t, val, 0.0)
	})

	t.Run("all losers", func(t *testing.T) {
		closes := []float64{10.0, 9.0, 5.0}

		rsi := NewRsi(2)
		var val float64
		for _, close := range closes {
			val = rsi.Update(eventmodels.Candle{Close: close})
		}

		assert.Equal(t, 0.0, val)
	})

	t.Run("all winners", func(t *testing.T) {
		closes := []float64{10.0, 11.0, 15.0}

		rsi := NewRsi(2)
		var val float64
		for _, close := range closes {
			val = rsi.Update(eventmodels.Candle{Close: close})
		}

		expected := 99.0
		diff := math.Abs(val - expected)
		assert.Less(t, diff, equalityThreshold)
	})

	t.Run("flat series reads neutral", func(t *testing.T) {
		rsi := NewRsi(14)

		var val float64
		for i := 0; i < 100; i++ {
			val = rsi.Update(eventmodels.Candle{Close: 50.0})
		}

		assert.Equal(t, 50.0, val)
	})
}
