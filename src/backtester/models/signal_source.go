package models

import (
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// SignalSource wraps one strategy. Evaluate is causal: it receives the
// candles up to and including the current bar and must never be handed, nor
// assume the existence of, any later bar. Implementations are stateless
// between calls; crossover detection derives the previous bar's indicator
// values from the window itself.
type SignalSource interface {
	Name() string

	// WarmupPeriod is the minimum number of bars required before the source
	// can produce a non-HOLD signal.
	WarmupPeriod() int

	Evaluate(candles []*eventmodels.Candle) (Signal, error)
}
