package main

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/backtester/services"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/strategies"
)

// demo entrypoint: replays a synthetic series through every registered
// strategy and prints the leaderboard. The real cli lives in
// src/cmd/backtester.
func main() {
	start := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)

	candles := make([]*eventmodels.Candle, 500)
	for i := range candles {
		close_ := 100.0 + 20.0*math.Sin(float64(i)/15.0) + 0.03*float64(i)
		candles[i] = eventmodels.NewCandle(start.AddDate(0, 0, i), close_, close_, close_, close_, 1000)
	}

	engine := services.NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))

	specs := []models.StrategySpec{
		models.NewStrategySpec(strategies.StrategyBuyAndHold, nil),
		models.NewStrategySpec(strategies.StrategyMovingAverageCrossover, map[string]float64{"short_window": 10, "long_window": 30}),
		models.NewStrategySpec(strategies.StrategyRSIMeanReversion, map[string]float64{"period": 14}),
		models.NewStrategySpec(strategies.StrategyMACDCrossover, map[string]float64{"fast_window": 12, "slow_window": 26, "signal_window": 9}),
		models.NewStrategySpec(strategies.StrategyBollingerBounce, map[string]float64{"period": 20}),
		models.NewStrategySpec(strategies.StrategyMomentum, map[string]float64{"lookback": 10, "threshold": 0.03}),
	}

	entries, err := engine.Compare(context.Background(), eventmodels.NewStockSymbol("DEMO"), candles, specs)
	if err != nil {
		log.Fatalf("comparison failed: %v", err)
	}

	fmt.Println(services.RenderComparison(entries))
	fmt.Println(entries[0].Result)
}
