package strategies

import (
	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// BuyAndHold emits a single BUY on the first valid bar and holds thereafter.
// It doubles as the benchmark strategy for every analyzer report.
type BuyAndHold struct{}

func (s *BuyAndHold) Name() string {
	return "buy_and_hold"
}

func (s *BuyAndHold) WarmupPeriod() int {
	return 1
}

func (s *BuyAndHold) Evaluate(candles []*eventmodels.Candle) (models.Signal, error) {
	if len(candles) == 0 || undefinedBar(candles) {
		return models.NewHoldSignal(), nil
	}

	if len(candles) == 1 {
		return models.NewSignal(models.SignalActionBuy, 1.0), nil
	}

	return models.NewHoldSignal(), nil
}

func NewBuyAndHold() *BuyAndHold {
	return &BuyAndHold{}
}
