package strategies

import (
	"fmt"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
)

const (
	StrategyMovingAverageCrossover = "moving_average_crossover"
	StrategyRSIMeanReversion       = "rsi_mean_reversion"
	StrategyMACDCrossover          = "macd_crossover"
	StrategyBollingerBounce        = "bollinger_bounce"
	StrategyMomentum               = "momentum"
	StrategyBuyAndHold             = "buy_and_hold"
	StrategyMLSignal               = "ml_signal"
)

// indicator column names read by the default ml_signal classifier
const (
	MLSignalColumn     = "ml_signal"
	MLConfidenceColumn = "ml_confidence"
)

// Ids lists every strategy identifier the registry can build, in ranking
// tie-break order.
func Ids() []string {
	return []string{
		StrategyBollingerBounce,
		StrategyBuyAndHold,
		StrategyMACDCrossover,
		StrategyMLSignal,
		StrategyMomentum,
		StrategyMovingAverageCrossover,
		StrategyRSIMeanReversion,
	}
}

// New builds a SignalSource from a spec. An unrecognized id fails with
// ErrUnknownStrategy before any simulation starts.
func New(spec models.StrategySpec) (models.SignalSource, error) {
	switch spec.ID {
	case StrategyMovingAverageCrossover:
		shortWindow, err := spec.GetIntParam("short_window")
		if err != nil {
			return nil, err
		}

		longWindow, err := spec.GetIntParam("long_window")
		if err != nil {
			return nil, err
		}

		return NewMovingAverageCrossover(shortWindow, longWindow)

	case StrategyRSIMeanReversion:
		period, err := spec.GetIntParam("period")
		if err != nil {
			return nil, err
		}

		oversold := spec.GetParamOrDefault("oversold", 30)
		overbought := spec.GetParamOrDefault("overbought", 70)

		return NewRSIMeanReversion(period, oversold, overbought)

	case StrategyMACDCrossover:
		fastWindow, err := spec.GetIntParam("fast_window")
		if err != nil {
			return nil, err
		}

		slowWindow, err := spec.GetIntParam("slow_window")
		if err != nil {
			return nil, err
		}

		signalWindow, err := spec.GetIntParam("signal_window")
		if err != nil {
			return nil, err
		}

		return NewMACDCrossover(fastWindow, slowWindow, signalWindow)

	case StrategyBollingerBounce:
		period, err := spec.GetIntParam("period")
		if err != nil {
			return nil, err
		}

		numStd := spec.GetParamOrDefault("num_std", 2.0)

		return NewBollingerBounce(period, numStd)

	case StrategyMomentum:
		lookback, err := spec.GetIntParam("lookback")
		if err != nil {
			return nil, err
		}

		threshold := spec.GetParamOrDefault("threshold", 0.05)

		return NewMomentum(lookback, threshold)

	case StrategyBuyAndHold:
		return NewBuyAndHold(), nil

	case StrategyMLSignal:
		warmup := int(spec.GetParamOrDefault("warmup", 1))
		return NewMLSignal(NewIndicatorClassifier(MLSignalColumn, MLConfidenceColumn), warmup)

	default:
		return nil, fmt.Errorf("strategies.New: %s: %w", spec.ID, models.ErrUnknownStrategy)
	}
}
