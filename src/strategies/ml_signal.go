package strategies

import (
	"fmt"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// Classifier is the external model hook: a pure function over the causal
// window returning an action plus confidence. Training and inference live
// outside this module.
type Classifier func(candles []*eventmodels.Candle) (models.Signal, error)

// MLSignal delegates signal generation to an injected classifier. The engine
// treats it like any other source; the classifier must not look past the
// window it is handed.
type MLSignal struct {
	classifier Classifier
	warmup     int
}

func (s *MLSignal) Name() string {
	return "ml_signal"
}

func (s *MLSignal) WarmupPeriod() int {
	return s.warmup
}

func (s *MLSignal) Evaluate(candles []*eventmodels.Candle) (models.Signal, error) {
	if len(candles) < s.warmup || undefinedBar(candles) {
		return models.NewHoldSignal(), nil
	}

	signal, err := s.classifier(candles)
	if err != nil {
		return models.Signal{}, fmt.Errorf("MLSignal.Evaluate: classifier failed: %w", err)
	}

	if err := signal.Validate(); err != nil {
		return models.Signal{}, fmt.Errorf("MLSignal.Evaluate: classifier returned invalid signal: %w", err)
	}

	return signal, nil
}

func NewMLSignal(classifier Classifier, warmup int) (*MLSignal, error) {
	if classifier == nil {
		return nil, fmt.Errorf("NewMLSignal: classifier is required: %w", models.ErrInvalidParameter)
	}

	if warmup < 1 {
		warmup = 1
	}

	return &MLSignal{
		classifier: classifier,
		warmup:     warmup,
	}, nil
}

// NewIndicatorClassifier adapts provider-precomputed classifier columns into
// a Classifier: signalName holds +1/-1/0 for buy/sell/hold and
// confidenceName the model's confidence. Missing or NaN values hold.
func NewIndicatorClassifier(signalName, confidenceName string) Classifier {
	return func(candles []*eventmodels.Candle) (models.Signal, error) {
		c := candles[len(candles)-1]

		val, found := c.Indicator(signalName)
		if !found {
			return models.NewHoldSignal(), nil
		}

		confidence, found := c.Indicator(confidenceName)
		if !found {
			confidence = 1.0
		}

		switch {
		case val > 0:
			return models.NewSignal(models.SignalActionBuy, confidence), nil
		case val < 0:
			return models.NewSignal(models.SignalActionSell, confidence), nil
		default:
			return models.NewHoldSignal(), nil
		}
	}
}
