package indicators

import (
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

type Ema struct {
	Period int
	value  float64
	seed   []float64
	ready  bool
}

// Update feeds one close price. The first Period closes seed the average with
// a plain SMA; subsequent updates apply the standard smoothing factor
// 2 / (Period + 1).
func (e *Ema) UpdateValue(close float64) (float64, bool) {
	if !e.ready {
		e.seed = append(e.seed, close)
		if len(e.seed) < e.Period {
			return 0, false
		}

		e.value = average(e.seed)
		e.seed = nil
		e.ready = true
		return e.value, true
	}

	multiplier := 2.0 / (float64(e.Period) + 1.0)
	e.value = (close-e.value)*multiplier + e.value

	return e.value, true
}

func (e *Ema) Update(c eventmodels.Candle) (float64, bool) {
	return e.UpdateValue(c.Close)
}

func NewEma(period int) *Ema {
	return &Ema{
		Period: period,
	}
}
