package strategies

import (
	"fmt"
	"math"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/indicators"
)

// BollingerBounce buys a close below the lower band and sells a close above
// the upper band, betting on reversion to the moving average.
type BollingerBounce struct {
	Period int
	NumStd float64
}

func (s *BollingerBounce) Name() string {
	return fmt.Sprintf("bollinger_bounce(%d,%v)", s.Period, s.NumStd)
}

func (s *BollingerBounce) WarmupPeriod() int {
	return s.Period + 1
}

func (s *BollingerBounce) Evaluate(candles []*eventmodels.Candle) (models.Signal, error) {
	if len(candles) < s.WarmupPeriod() || undefinedBar(candles) {
		return models.NewHoldSignal(), nil
	}

	bollinger := indicators.NewBollingerBands(s.Period, s.NumStd)

	var bandStats indicators.BollingerBandsStats
	ready := false
	for _, c := range candles {
		var err error
		ready, bandStats, err = bollinger.Update(*c)
		if err != nil {
			return models.Signal{}, fmt.Errorf("BollingerBounce.Evaluate: %w", err)
		}
	}

	if !ready {
		return models.NewHoldSignal(), nil
	}

	bandWidth := bandStats.Upper - bandStats.Lower
	if bandWidth <= 0 {
		// flat series: bands collapse onto the average
		return models.NewHoldSignal(), nil
	}

	close_ := candles[len(candles)-1].Close

	if close_ < bandStats.Lower {
		confidence := 0.5 + math.Min(0.5, (bandStats.Lower-close_)/bandWidth)
		return models.NewSignal(models.SignalActionBuy, confidence), nil
	}

	if close_ > bandStats.Upper {
		confidence := 0.5 + math.Min(0.5, (close_-bandStats.Upper)/bandWidth)
		return models.NewSignal(models.SignalActionSell, confidence), nil
	}

	return models.NewHoldSignal(), nil
}

func NewBollingerBounce(period int, numStd float64) (*BollingerBounce, error) {
	if period <= 1 {
		return nil, fmt.Errorf("NewBollingerBounce: period must be greater than 1, found %d: %w", period, models.ErrInvalidParameter)
	}

	if numStd <= 0 {
		return nil, fmt.Errorf("NewBollingerBounce: num std must be positive, found %v: %w", numStd, models.ErrInvalidParameter)
	}

	return &BollingerBounce{
		Period: period,
		NumStd: numStd,
	}, nil
}
