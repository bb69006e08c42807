package indicators

import (
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

type Sma struct {
	Period int
	closes []float64
}

// Update feeds one candle. The bool return is false until Period closes have
// been seen.
func (s *Sma) Update(c eventmodels.Candle) (float64, bool) {
	s.closes = append(s.closes, c.Close)
	if len(s.closes) < s.Period {
		return 0, false
	}

	if len(s.closes) > s.Period {
		s.closes = s.closes[1:]
	}

	return average(s.closes), true
}

func NewSma(period int) *Sma {
	return &Sma{
		Period: period,
	}
}
