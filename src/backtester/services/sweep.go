package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/strategies"
)

type SweepResult struct {
	BestSpec    models.StrategySpec `json:"best_spec"`
	BestMetrics *models.Metrics     `json:"best_metrics"`
	All         []*ComparisonEntry  `json:"all"`
}

// expandParamGrid builds the Cartesian product of the parameter ranges.
// Keys are iterated in sorted order so the grid is deterministic.
func expandParamGrid(strategyID string, paramRanges map[string][]float64) ([]models.StrategySpec, error) {
	keys := make([]string, 0, len(paramRanges))
	for k, vals := range paramRanges {
		if len(vals) == 0 {
			return nil, fmt.Errorf("expandParamGrid: empty range for param %s: %w", k, models.ErrInvalidParameter)
		}

		keys = append(keys, k)
	}

	sort.Strings(keys)

	specs := []models.StrategySpec{models.NewStrategySpec(strategyID, map[string]float64{})}
	for _, key := range keys {
		expanded := make([]models.StrategySpec, 0, len(specs)*len(paramRanges[key]))
		for _, spec := range specs {
			for _, val := range paramRanges[key] {
				params := make(map[string]float64, len(spec.Params)+1)
				for k, v := range spec.Params {
					params[k] = v
				}

				params[key] = val
				expanded = append(expanded, models.NewStrategySpec(strategyID, params))
			}
		}

		specs = expanded
	}

	return specs, nil
}

// Sweep grid-searches a strategy's parameter space: one independent engine
// run per combination, no shared state between combinations. Results come
// back ranked by Sharpe; the best spec is the head of that ranking.
func (e *BacktestEngine) Sweep(ctx context.Context, symbol eventmodels.StockSymbol, candles []*eventmodels.Candle, strategyID string, paramRanges map[string][]float64) (*SweepResult, error) {
	known := false
	for _, id := range strategies.Ids() {
		if id == strategyID {
			known = true
			break
		}
	}

	if !known {
		return nil, fmt.Errorf("Sweep: %s: %w", strategyID, models.ErrUnknownStrategy)
	}

	if len(paramRanges) == 0 {
		return nil, fmt.Errorf("Sweep: no param ranges given: %w", models.ErrInvalidParameter)
	}

	specs, err := expandParamGrid(strategyID, paramRanges)
	if err != nil {
		return nil, err
	}

	entries, err := e.Compare(ctx, symbol, candles, specs)
	if err != nil {
		return nil, fmt.Errorf("Sweep: %w", err)
	}

	return &SweepResult{
		BestSpec:    entries[0].Spec,
		BestMetrics: entries[0].Metrics,
		All:         entries,
	}, nil
}
