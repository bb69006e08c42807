package strategies

import (
	"fmt"
	"math"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/indicators"
)

// RSIMeanReversion buys oversold bars and sells overbought ones.
type RSIMeanReversion struct {
	Period     int
	Oversold   float64
	Overbought float64
}

func (s *RSIMeanReversion) Name() string {
	return fmt.Sprintf("rsi_mean_reversion(%d,%v,%v)", s.Period, s.Oversold, s.Overbought)
}

func (s *RSIMeanReversion) WarmupPeriod() int {
	return s.Period + 1
}

func (s *RSIMeanReversion) Evaluate(candles []*eventmodels.Candle) (models.Signal, error) {
	if len(candles) < s.WarmupPeriod() || undefinedBar(candles) {
		return models.NewHoldSignal(), nil
	}

	rsi := indicators.NewRsi(s.Period)

	var val float64
	for _, c := range candles {
		val = rsi.Update(*c)
	}

	if val == 0 {
		// rsi not defined yet, or the window is all losers: either way there
		// is nothing to buy into
		return models.NewHoldSignal(), nil
	}

	if val < s.Oversold {
		confidence := 0.5 + math.Min(0.5, (s.Oversold-val)/s.Oversold)
		return models.NewSignal(models.SignalActionBuy, confidence), nil
	}

	if val > s.Overbought {
		confidence := 0.5 + math.Min(0.5, (val-s.Overbought)/(100-s.Overbought))
		return models.NewSignal(models.SignalActionSell, confidence), nil
	}

	return models.NewHoldSignal(), nil
}

func NewRSIMeanReversion(period int, oversold, overbought float64) (*RSIMeanReversion, error) {
	if period <= 0 {
		return nil, fmt.Errorf("NewRSIMeanReversion: period must be positive, found %d: %w", period, models.ErrInvalidParameter)
	}

	if oversold <= 0 || overbought >= 100 || oversold >= overbought {
		return nil, fmt.Errorf("NewRSIMeanReversion: thresholds must satisfy 0 < oversold < overbought < 100, found (%v, %v): %w", oversold, overbought, models.ErrInvalidParameter)
	}

	return &RSIMeanReversion{
		Period:     period,
		Oversold:   oversold,
		Overbought: overbought,
	}, nil
}
