package services

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/strategies"
)

// BacktestEngine replays a candle series against one SignalSource, mutating
// a freshly allocated PortfolioState per run. Runs are sequential, RNG-free
// and side-effect-free: the same inputs always produce the same result.
type BacktestEngine struct {
	CostModel models.CostModel
	Config    models.EngineConfig
}

func NewBacktestEngine(costModel models.CostModel, config models.EngineConfig) *BacktestEngine {
	return &BacktestEngine{
		CostModel: costModel,
		Config:    config.ApplyDefaults(),
	}
}

func (e *BacktestEngine) executeBuy(portfolio *models.PortfolioState, c *eventmodels.Candle) bool {
	shares := math.Floor(portfolio.Cash * e.Config.AllocationFraction / c.Close)
	if shares <= 0 {
		reason := fmt.Sprintf("buy signal skipped: cash %.2f buys zero shares at %.2f", portfolio.Cash, c.Close)
		log.Warnf("%s: %s", c.Timestamp.Format("2006-01-02"), reason)
		portfolio.RecordSkippedTrade(c.Timestamp, reason)
		return false
	}

	grossValue, commission, totalCost := e.CostModel.ApplyBuyCost(c.Close, shares)

	if grossValue < e.Config.MinTradeValue {
		reason := fmt.Sprintf("buy signal skipped: trade value %.2f below minimum %.2f", grossValue, e.Config.MinTradeValue)
		log.Warnf("%s: %s", c.Timestamp.Format("2006-01-02"), reason)
		portfolio.RecordSkippedTrade(c.Timestamp, reason)
		return false
	}

	if totalCost > portfolio.Cash {
		reason := fmt.Sprintf("buy signal skipped: total cost %.2f exceeds cash %.2f", totalCost, portfolio.Cash)
		log.Warnf("%s: %s", c.Timestamp.Format("2006-01-02"), reason)
		portfolio.RecordSkippedTrade(c.Timestamp, reason)
		return false
	}

	portfolio.Cash -= totalCost
	portfolio.SharesHeld = shares
	portfolio.TradeLog = append(portfolio.TradeLog, models.NewTrade(c.Timestamp, models.SignalActionBuy, c.Close, shares, grossValue, commission, portfolio.Cash))

	return true
}

func (e *BacktestEngine) executeSell(portfolio *models.PortfolioState, c *eventmodels.Candle) {
	shares := portfolio.SharesHeld
	grossValue, commission, netProceeds := e.CostModel.ApplySellProceeds(c.Close, shares)

	portfolio.Cash += netProceeds
	portfolio.SharesHeld = 0
	portfolio.TradeLog = append(portfolio.TradeLog, models.NewTrade(c.Timestamp, models.SignalActionSell, c.Close, shares, grossValue, commission, portfolio.Cash))
}

func (e *BacktestEngine) replay(candles []*eventmodels.Candle, source models.SignalSource) (*models.PortfolioState, error) {
	portfolio := models.NewPortfolioState(e.Config.InitialCapital)
	state := models.PositionStateFlat
	warmup := source.WarmupPeriod()

	for t, c := range candles {
		if t+1 >= warmup {
			signal, err := source.Evaluate(candles[:t+1])
			if err != nil {
				return nil, fmt.Errorf("replay: %s failed at bar %d: %w", source.Name(), t, err)
			}

			if state == models.PositionStateFlat && signal.Action == models.SignalActionBuy && signal.Confidence >= e.Config.ConfidenceThreshold {
				if e.executeBuy(portfolio, c) {
					state = models.PositionStateLong
				}
			} else if state == models.PositionStateLong && signal.Action == models.SignalActionSell {
				e.executeSell(portfolio, c)
				state = models.PositionStateFlat
			}
		}

		portfolio.Snapshot(c)
	}

	// force liquidation so every run terminates flat
	if state == models.PositionStateLong {
		last := candles[len(candles)-1]
		e.executeSell(portfolio, last)
		portfolio.Snapshot(last)
	}

	return portfolio, nil
}

// Run replays the series and returns the full result, including the
// buy-and-hold benchmark metrics computed over the same candles and capital.
// Fewer candles than the source's warmup is not an error: the run completes
// with zero trades and a flat equity curve.
func (e *BacktestEngine) Run(symbol eventmodels.StockSymbol, candles []*eventmodels.Candle, source models.SignalSource) (*models.BacktestResult, error) {
	result, err := e.runWithoutBenchmark(symbol, candles, source)
	if err != nil {
		return nil, err
	}

	benchmark, err := e.runWithoutBenchmark(symbol, candles, strategies.NewBuyAndHold())
	if err != nil {
		return nil, fmt.Errorf("Run: benchmark failed: %w", err)
	}

	result.Benchmark = benchmark.Metrics

	return result, nil
}

func (e *BacktestEngine) runWithoutBenchmark(symbol eventmodels.StockSymbol, candles []*eventmodels.Candle, source models.SignalSource) (*models.BacktestResult, error) {
	if err := e.Config.Validate(); err != nil {
		return nil, err
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("Run: %s: %w", symbol, models.ErrNoData)
	}

	if len(candles) < source.WarmupPeriod() {
		log.Warnf("Run: %s has %d candles, fewer than the %d bar warmup of %s", symbol, len(candles), source.WarmupPeriod(), source.Name())
	}

	portfolio, err := e.replay(candles, source)
	if err != nil {
		return nil, err
	}

	result := models.NewBacktestResult(source.Name(), symbol, candles[0].Timestamp, candles[len(candles)-1].Timestamp, e.Config.InitialCapital)
	result.TradeLog = portfolio.TradeLog
	result.EquityCurve = portfolio.EquityCurve
	result.SkippedTrades = portfolio.SkippedTrades
	result.FinalValue = portfolio.EquityCurve[len(portfolio.EquityCurve)-1].TotalValue

	metrics, err := Analyze(portfolio.EquityCurve, portfolio.TradeLog, e.Config.InitialCapital, e.Config.RiskFreeRate)
	if err != nil {
		return nil, fmt.Errorf("Run: failed to analyze %s: %w", source.Name(), err)
	}

	result.Metrics = metrics

	return result, nil
}
