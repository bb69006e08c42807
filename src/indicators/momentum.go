package indicators

import (
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

type Momentum struct {
	Lookback int
	closes   []float64
}

// Update feeds one candle and returns the fractional price change over the
// lookback window, e.g. 0.05 for a 5% rise.
func (m *Momentum) Update(c eventmodels.Candle) (float64, bool) {
	m.closes = append(m.closes, c.Close)
	if len(m.closes) <= m.Lookback {
		return 0, false
	}

	if len(m.closes) > m.Lookback+1 {
		m.closes = m.closes[1:]
	}

	base := m.closes[0]
	if base == 0 {
		return 0, false
	}

	return (c.Close - base) / base, true
}

func NewMomentum(lookback int) *Momentum {
	return &Momentum{
		Lookback: lookback,
	}
}
