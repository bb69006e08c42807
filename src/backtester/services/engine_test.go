package services

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/strategies"
)

func generateCandles(n int, priceAt func(i int) float64) []*eventmodels.Candle {
	start := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)

	candles := make([]*eventmodels.Candle, n)
	for i := 0; i < n; i++ {
		close_ := priceAt(i)
		candles[i] = eventmodels.NewCandle(start.AddDate(0, 0, i), close_, close_, close_, close_, 1000)
	}

	return candles
}

func oscillatingPrice(i int) float64 {
	return 100.0 + 15.0*math.Sin(float64(i)/4.0) + 0.05*float64(i)
}

func TestRun(t *testing.T) {
	symbol := eventmodels.NewStockSymbol("AAPL")

	t.Run("solvency and accounting identity", func(t *testing.T) {
		candles := generateCandles(200, oscillatingPrice)
		source, err := strategies.NewMovingAverageCrossover(5, 20)
		require.NoError(t, err)

		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))
		result, err := engine.Run(symbol, candles, source)
		require.NoError(t, err)

		for i, snapshot := range result.EquityCurve {
			assert.GreaterOrEqual(t, snapshot.Cash, 0.0)
			assert.GreaterOrEqual(t, snapshot.SharesHeld, 0.0)

			candleIdx := i
			if candleIdx > len(candles)-1 {
				candleIdx = len(candles) - 1
			}

			expected := snapshot.Cash + snapshot.SharesHeld*candles[candleIdx].Close
			assert.InDelta(t, expected, snapshot.TotalValue, 1e-9)
		}
	})

	t.Run("no consecutive buys or sells", func(t *testing.T) {
		candles := generateCandles(200, oscillatingPrice)
		source, err := strategies.NewMovingAverageCrossover(5, 20)
		require.NoError(t, err)

		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))
		result, err := engine.Run(symbol, candles, source)
		require.NoError(t, err)

		require.Greater(t, len(result.TradeLog), 0)

		for i := 1; i < len(result.TradeLog); i++ {
			assert.NotEqual(t, result.TradeLog[i-1].Action, result.TradeLog[i].Action)
		}

		// every run terminates flat
		assert.Equal(t, models.SignalActionSell, result.TradeLog[len(result.TradeLog)-1].Action)
	})

	t.Run("identical inputs produce byte-identical results", func(t *testing.T) {
		candles := generateCandles(120, oscillatingPrice)

		run := func() []byte {
			source, err := strategies.NewMovingAverageCrossover(5, 20)
			require.NoError(t, err)

			engine := NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))
			result, err := engine.Run(symbol, candles, source)
			require.NoError(t, err)

			data, err := json.Marshal(result)
			require.NoError(t, err)

			return data
		}

		assert.Equal(t, run(), run())
	})

	t.Run("rising series: one buy, forced liquidation, profit", func(t *testing.T) {
		candles := generateCandles(60, func(i int) float64 {
			return 100.0 + float64(i)
		})

		source, err := strategies.NewMovingAverageCrossover(5, 20)
		require.NoError(t, err)

		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))
		result, err := engine.Run(symbol, candles, source)
		require.NoError(t, err)

		require.Len(t, result.TradeLog, 2)
		assert.Equal(t, models.SignalActionBuy, result.TradeLog[0].Action)
		assert.Equal(t, candles[19].Timestamp, result.TradeLog[0].Timestamp)
		assert.Equal(t, models.SignalActionSell, result.TradeLog[1].Action)
		assert.Equal(t, candles[59].Timestamp, result.TradeLog[1].Timestamp)
		assert.Greater(t, result.FinalValue, result.InitialCapital)
	})

	t.Run("flat series: rsi mean reversion never trades", func(t *testing.T) {
		candles := generateCandles(100, func(i int) float64 {
			return 50.0
		})

		source, err := strategies.NewRSIMeanReversion(14, 30, 70)
		require.NoError(t, err)

		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))
		result, err := engine.Run(symbol, candles, source)
		require.NoError(t, err)

		assert.Len(t, result.TradeLog, 0)
		assert.Equal(t, 10000.0, result.FinalValue)
	})

	t.Run("buy below min trade value is skipped, not an error", func(t *testing.T) {
		candles := generateCandles(10, func(i int) float64 {
			return 10.0
		})

		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.EngineConfig{
			InitialCapital: 100,
			MinTradeValue:  1000,
		}.ApplyDefaults())

		result, err := engine.Run(symbol, candles, strategies.NewBuyAndHold())
		require.NoError(t, err)

		assert.Len(t, result.TradeLog, 0)
		assert.Greater(t, len(result.SkippedTrades), 0)
		assert.Equal(t, 100.0, result.FinalValue)
	})

	t.Run("fewer candles than warmup returns a flat zero-trade result", func(t *testing.T) {
		candles := generateCandles(5, oscillatingPrice)

		source, err := strategies.NewMovingAverageCrossover(5, 20)
		require.NoError(t, err)

		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))
		result, err := engine.Run(symbol, candles, source)
		require.NoError(t, err)

		assert.Len(t, result.TradeLog, 0)
		require.Len(t, result.EquityCurve, 5)
		for _, snapshot := range result.EquityCurve {
			assert.Equal(t, 10000.0, snapshot.TotalValue)
		}
	})

	t.Run("empty series is an error", func(t *testing.T) {
		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.NewEngineConfig(10000))

		_, err := engine.Run(symbol, nil, strategies.NewBuyAndHold())
		assert.ErrorIs(t, err, models.ErrNoData)
	})

	t.Run("non-positive capital is rejected", func(t *testing.T) {
		candles := generateCandles(10, oscillatingPrice)
		engine := NewBacktestEngine(models.NewDefaultCostModel(), models.EngineConfig{InitialCapital: -5}.ApplyDefaults())

		_, err := engine.Run(symbol, candles, strategies.NewBuyAndHold())
		assert.ErrorIs(t, err, models.ErrInvalidParameter)
	})

	t.Run("benchmark matches the buy-and-hold closed form", func(t *testing.T) {
		candles := generateCandles(50, func(i int) float64 {
			return 100.0 + 2.0*float64(i)
		})

		capital := 10000.0
		costModel := models.NewDefaultCostModel()
		engine := NewBacktestEngine(costModel, models.NewEngineConfig(capital))

		result, err := engine.Run(symbol, candles, strategies.NewBuyAndHold())
		require.NoError(t, err)
		require.NotNil(t, result.Benchmark)

		shares := math.Floor(capital * models.DefaultAllocationFraction / candles[0].Close)
		_, _, totalCost := costModel.ApplyBuyCost(candles[0].Close, shares)
		_, _, netProceeds := costModel.ApplySellProceeds(candles[len(candles)-1].Close, shares)
		expected := capital - totalCost + netProceeds

		assert.InDelta(t, expected, result.Benchmark.FinalValue, 1e-6)
		assert.InDelta(t, expected, result.FinalValue, 1e-6)
	})

	t.Run("mutating bars after t does not change the signal at t", func(t *testing.T) {
		candles := generateCandles(120, oscillatingPrice)

		source, err := strategies.NewMovingAverageCrossover(5, 20)
		require.NoError(t, err)

		for _, cut := range []int{30, 60, 90} {
			before, err := source.Evaluate(candles[:cut])
			require.NoError(t, err)

			mutated := make([]*eventmodels.Candle, len(candles))
			copy(mutated, candles)
			for i := cut; i < len(mutated); i++ {
				c := *mutated[i]
				c.Close = 1e6
				mutated[i] = &c
			}

			after, err := source.Evaluate(mutated[:cut])
			require.NoError(t, err)

			assert.Equal(t, before, after)
		}
	})
}
