package strategies

import (
	"fmt"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/indicators"
)

// MovingAverageCrossover goes long when the short SMA crosses above the long
// SMA and exits on the opposite cross. The crossing event is detected from
// the previous completed bar's averages, never from future data. On the
// first bar where both averages are defined there is no previous reading: a
// short average already above the long one counts as an entry cross.
type MovingAverageCrossover struct {
	ShortWindow int
	LongWindow  int
}

func (s *MovingAverageCrossover) Name() string {
	return fmt.Sprintf("moving_average_crossover(%d,%d)", s.ShortWindow, s.LongWindow)
}

func (s *MovingAverageCrossover) WarmupPeriod() int {
	return s.LongWindow
}

func (s *MovingAverageCrossover) Evaluate(candles []*eventmodels.Candle) (models.Signal, error) {
	if len(candles) < s.WarmupPeriod() || undefinedBar(candles) {
		return models.NewHoldSignal(), nil
	}

	shortSma := indicators.NewSma(s.ShortWindow)
	longSma := indicators.NewSma(s.LongWindow)

	var shortPrev, shortCur, longPrev, longCur float64
	longReadyBars := 0
	for _, c := range candles {
		if val, ready := shortSma.Update(*c); ready {
			shortPrev = shortCur
			shortCur = val
		}

		if val, ready := longSma.Update(*c); ready {
			longPrev = longCur
			longCur = val
			longReadyBars++
		}
	}

	if longReadyBars == 1 {
		// first bar with both averages defined
		if shortCur > longCur {
			return models.NewSignal(models.SignalActionBuy, crossConfidence(shortCur-longCur, longCur)), nil
		}

		return models.NewHoldSignal(), nil
	}

	if shortPrev <= longPrev && shortCur > longCur {
		return models.NewSignal(models.SignalActionBuy, crossConfidence(shortCur-longCur, longCur)), nil
	}

	if shortPrev >= longPrev && shortCur < longCur {
		return models.NewSignal(models.SignalActionSell, crossConfidence(shortCur-longCur, longCur)), nil
	}

	return models.NewHoldSignal(), nil
}

func NewMovingAverageCrossover(shortWindow, longWindow int) (*MovingAverageCrossover, error) {
	if shortWindow <= 0 || longWindow <= 0 {
		return nil, fmt.Errorf("NewMovingAverageCrossover: windows must be positive, found (%d, %d): %w", shortWindow, longWindow, models.ErrInvalidParameter)
	}

	if shortWindow >= longWindow {
		return nil, fmt.Errorf("NewMovingAverageCrossover: short window %d must be less than long window %d: %w", shortWindow, longWindow, models.ErrInvalidParameter)
	}

	return &MovingAverageCrossover{
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
	}, nil
}
