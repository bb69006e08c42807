package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/strategies"
)

// DefaultMaxConcurrentRuns bounds the comparator's worker pool. Runs share
// no mutable state, so the fan-out is purely a throughput knob.
const DefaultMaxConcurrentRuns = 8

type ComparisonEntry struct {
	Spec    models.StrategySpec    `json:"spec"`
	Result  *models.BacktestResult `json:"result"`
	Metrics *models.Metrics        `json:"metrics"`
}

// rankEntries orders by Sharpe descending with ties broken by the spec
// label, so the ranking is reproducible regardless of completion order.
func rankEntries(entries []*ComparisonEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := entries[i].Metrics.SharpeRatio, entries[j].Metrics.SharpeRatio
		if si != sj {
			return si > sj
		}

		return entries[i].Spec.Label() < entries[j].Spec.Label()
	})
}

// RenderComparison formats ranked entries as a leaderboard table.
func RenderComparison(entries []*ComparisonEntry) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"#", "Strategy", "Total Return", "Sharpe", "Max Drawdown", "Win Rate", "Trades"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")

	for i, entry := range entries {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			entry.Spec.Label(),
			p.Sprintf("%.2f%%", entry.Metrics.TotalReturnPct*100),
			p.Sprintf("%.2f", entry.Metrics.SharpeRatio),
			p.Sprintf("%.2f%%", entry.Metrics.MaxDrawdown*100),
			p.Sprintf("%.2f%%", entry.Metrics.WinRate*100),
			fmt.Sprintf("%d", entry.Metrics.NumTrades),
		})
	}

	table.Render()

	return display.String()
}

// Compare runs one independent backtest per spec and returns the entries
// ranked by Sharpe ratio. Every spec is validated before any simulation
// starts. Cancelling the context stops dispatching new runs; in-flight runs
// finish normally.
func (e *BacktestEngine) Compare(ctx context.Context, symbol eventmodels.StockSymbol, candles []*eventmodels.Candle, specs []models.StrategySpec) ([]*ComparisonEntry, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("Compare: %s: %w", symbol, models.ErrNoData)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("Compare: no strategy specs given: %w", models.ErrInvalidParameter)
	}

	// fail fast on unknown strategies and malformed params
	sources := make([]models.SignalSource, len(specs))
	for i, spec := range specs {
		source, err := strategies.New(spec)
		if err != nil {
			return nil, fmt.Errorf("Compare: %w", err)
		}

		sources[i] = source
	}

	numWorkers := DefaultMaxConcurrentRuns
	if len(specs) < numWorkers {
		numWorkers = len(specs)
	}

	jobCh := make(chan int)
	entries := make([]*ComparisonEntry, len(specs))
	errs := make([]error, len(specs))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobCh {
				result, err := e.Run(symbol, candles, sources[i])
				if err != nil {
					errs[i] = err
					continue
				}

				entries[i] = &ComparisonEntry{
					Spec:    specs[i],
					Result:  result,
					Metrics: result.Metrics,
				}
			}
		}()
	}

dispatch:
	for i := range specs {
		select {
		case <-ctx.Done():
			log.Warnf("Compare: cancelled after dispatching %d of %d runs", i, len(specs))
			break dispatch
		case jobCh <- i:
		}
	}

	close(jobCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Compare: %w", err)
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("Compare: run %s failed: %w", specs[i].Label(), err)
		}
	}

	rankEntries(entries)

	return entries, nil
}
