package strategies

import (
	"fmt"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/indicators"
)

// MACDCrossover trades the MACD line crossing its signal line: long when the
// histogram turns positive, out when it turns negative. The previous bar's
// histogram is derived from the window, so a cross is only ever detected one
// completed bar after the fact.
type MACDCrossover struct {
	FastWindow   int
	SlowWindow   int
	SignalWindow int
}

func (s *MACDCrossover) Name() string {
	return fmt.Sprintf("macd_crossover(%d,%d,%d)", s.FastWindow, s.SlowWindow, s.SignalWindow)
}

func (s *MACDCrossover) WarmupPeriod() int {
	return s.SlowWindow + s.SignalWindow
}

func (s *MACDCrossover) Evaluate(candles []*eventmodels.Candle) (models.Signal, error) {
	if len(candles) < s.WarmupPeriod() || undefinedBar(candles) {
		return models.NewHoldSignal(), nil
	}

	macd := indicators.NewMacd(s.FastWindow, s.SlowWindow, s.SignalWindow)

	var prev, cur indicators.MacdStats
	readyBars := 0
	for _, c := range candles {
		if val, ready := macd.Update(*c); ready {
			prev = cur
			cur = val
			readyBars++
		}
	}

	if readyBars < 2 {
		return models.NewHoldSignal(), nil
	}

	close_ := candles[len(candles)-1].Close

	if prev.Histogram <= 0 && cur.Histogram > 0 {
		return models.NewSignal(models.SignalActionBuy, crossConfidence(cur.Histogram, close_)), nil
	}

	if prev.Histogram >= 0 && cur.Histogram < 0 {
		return models.NewSignal(models.SignalActionSell, crossConfidence(cur.Histogram, close_)), nil
	}

	return models.NewHoldSignal(), nil
}

func NewMACDCrossover(fastWindow, slowWindow, signalWindow int) (*MACDCrossover, error) {
	if fastWindow <= 0 || slowWindow <= 0 || signalWindow <= 0 {
		return nil, fmt.Errorf("NewMACDCrossover: windows must be positive, found (%d, %d, %d): %w", fastWindow, slowWindow, signalWindow, models.ErrInvalidParameter)
	}

	if fastWindow >= slowWindow {
		return nil, fmt.Errorf("NewMACDCrossover: fast window %d must be less than slow window %d: %w", fastWindow, slowWindow, models.ErrInvalidParameter)
	}

	return &MACDCrossover{
		FastWindow:   fastWindow,
		SlowWindow:   slowWindow,
		SignalWindow: signalWindow,
	}, nil
}
