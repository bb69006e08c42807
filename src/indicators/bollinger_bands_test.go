package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

func TestBollingerBands(t *testing.T) {
	closes := []float64{
		90.70, 92.90, 92.98, 91.80, 92.66, 92.68, 92.30, 92.77, 92.54, 92.95,
		93.20, 91.07, 89.83, 89.74, 90.40, 90.74, 88.02, 88.09, 88.84, 90.78,
		90.54, 91.39, 90.65,
	}

	t.Run("Calculate bands", func(t *testing.T) {
		var bandStats BollingerBandsStats
		bollinger := NewBollingerBands(20, 2.0)
		for _, close := range closes {
			_, _stats, err := bollinger.Update(eventmodels.Candle{High: close, Low: close, Close: close})
			assert.NoError(t, err)
			bandStats = _stats
		}

		assert.Equal(t, 91.0, math.Floor(bandStats.MovingAverage*10)/10)
		assert.Equal(t, 94.1, math.Floor(bandStats.Upper*10)/10)
		assert.Equal(t, 87.9, math.Floor(bandStats.Lower*10)/10)
	})

	t.Run("not ready before warmup", func(t *testing.T) {
		bollinger := NewBollingerBands(20, 2.0)
		for i := 0; i < 20; i++ {
			ready, _, err := bollinger.Update(eventmodels.Candle{High: 100, Low: 100, Close: 100})
			assert.NoError(t, err)
			assert.False(t, ready)
		}

		ready, _, err := bollinger.Update(eventmodels.Candle{High: 100, Low: 100, Close: 100})
		assert.NoError(t, err)
		assert.True(t, ready)
	})
}
