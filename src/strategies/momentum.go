package strategies

import (
	"fmt"
	"math"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/indicators"
)

// Momentum goes long when the lookback return exceeds the threshold and
// exits when it drops below the negative threshold.
type Momentum struct {
	Lookback  int
	Threshold float64
}

func (s *Momentum) Name() string {
	return fmt.Sprintf("momentum(%d,%v)", s.Lookback, s.Threshold)
}

func (s *Momentum) WarmupPeriod() int {
	return s.Lookback + 1
}

func (s *Momentum) Evaluate(candles []*eventmodels.Candle) (models.Signal, error) {
	if len(candles) < s.WarmupPeriod() || undefinedBar(candles) {
		return models.NewHoldSignal(), nil
	}

	momentum := indicators.NewMomentum(s.Lookback)

	var val float64
	ready := false
	for _, c := range candles {
		val, ready = momentum.Update(*c)
	}

	if !ready {
		return models.NewHoldSignal(), nil
	}

	if val > s.Threshold {
		confidence := 0.5 + math.Min(0.5, (val-s.Threshold)/s.Threshold)
		return models.NewSignal(models.SignalActionBuy, confidence), nil
	}

	if val < -s.Threshold {
		confidence := 0.5 + math.Min(0.5, (-val-s.Threshold)/s.Threshold)
		return models.NewSignal(models.SignalActionSell, confidence), nil
	}

	return models.NewHoldSignal(), nil
}

func NewMomentum(lookback int, threshold float64) (*Momentum, error) {
	if lookback <= 0 {
		return nil, fmt.Errorf("NewMomentum: lookback must be positive, found %d: %w", lookback, models.ErrInvalidParameter)
	}

	if threshold <= 0 {
		return nil, fmt.Errorf("NewMomentum: threshold must be positive, found %v: %w", threshold, models.ErrInvalidParameter)
	}

	return &Momentum{
		Lookback:  lookback,
		Threshold: threshold,
	}, nil
}
