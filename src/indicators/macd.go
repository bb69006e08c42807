package indicators

import (
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

type Macd struct {
	fast   *Ema
	slow   *Ema
	signal *Ema
}

type MacdStats struct {
	MacdLine   float64
	SignalLine float64
	Histogram  float64
}

// Update feeds one candle. Ready only once the slow EMA and the signal EMA
// over the MACD line both have enough history.
func (m *Macd) Update(c eventmodels.Candle) (MacdStats, bool) {
	fastVal, fastReady := m.fast.Update(c)
	slowVal, slowReady := m.slow.Update(c)

	if !fastReady || !slowReady {
		return MacdStats{}, false
	}

	macdLine := fastVal - slowVal
	signalVal, signalReady := m.signal.UpdateValue(macdLine)
	if !signalReady {
		return MacdStats{}, false
	}

	return MacdStats{
		MacdLine:   macdLine,
		SignalLine: signalVal,
		Histogram:  macdLine - signalVal,
	}, true
}

func NewMacd(fastPeriod, slowPeriod, signalPeriod int) *Macd {
	return &Macd{
		fast:   NewEma(fastPeriod),
		slow:   NewEma(slowPeriod),
		signal: NewEma(signalPeriod),
	}
}
