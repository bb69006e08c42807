package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
)

func snapshotCurve(values []float64) []*models.PortfolioSnapshot {
	start := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)

	curve := make([]*models.PortfolioSnapshot, len(values))
	for i, v := range values {
		curve[i] = &models.PortfolioSnapshot{
			Timestamp:  start.AddDate(0, 0, i),
			Cash:       v,
			TotalValue: v,
		}
	}

	return curve
}

func TestAnalyze(t *testing.T) {
	t.Run("flat curve", func(t *testing.T) {
		curve := snapshotCurve([]float64{10000, 10000, 10000, 10000})

		metrics, err := Analyze(curve, nil, 10000, models.DefaultRiskFreeRate)
		require.NoError(t, err)

		assert.Equal(t, 0.0, metrics.TotalReturn)
		assert.Equal(t, 0.0, metrics.TotalReturnPct)
		assert.Equal(t, 0.0, metrics.Volatility)
		assert.Equal(t, 0.0, metrics.SharpeRatio)
		assert.Equal(t, 0.0, metrics.MaxDrawdown)
		assert.True(t, metrics.CalmarRatio.Infinite)
		assert.Equal(t, 4, metrics.TradingDays)
	})

	t.Run("max drawdown from running peak", func(t *testing.T) {
		curve := snapshotCurve([]float64{10000, 11000, 9900, 10450})

		metrics, err := Analyze(curve, nil, 10000, models.DefaultRiskFreeRate)
		require.NoError(t, err)

		// peak 11000, trough 9900
		assert.InDelta(t, -0.1, metrics.MaxDrawdown, 1e-9)
		assert.False(t, metrics.CalmarRatio.Infinite)
	})

	t.Run("winning pair with no losses has infinite profit factor", func(t *testing.T) {
		start := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)
		tradeLog := []*models.Trade{
			models.NewTrade(start, models.SignalActionBuy, 100, 10, 1000, 1, 9000),
			models.NewTrade(start.AddDate(0, 0, 5), models.SignalActionSell, 120, 10, 1200, 1.2, 10190),
		}
		curve := snapshotCurve([]float64{10000, 10190})

		metrics, err := Analyze(curve, tradeLog, 10000, models.DefaultRiskFreeRate)
		require.NoError(t, err)

		require.Len(t, metrics.TradePairs, 1)
		assert.InDelta(t, 190.0, metrics.TradePairs[0].Pnl, 1e-9)
		assert.InDelta(t, 0.19, metrics.TradePairs[0].ReturnPct, 1e-9)
		assert.Equal(t, 1.0, metrics.WinRate)
		assert.True(t, metrics.ProfitFactor.Infinite)
		assert.InDelta(t, 190.0, metrics.AvgWin, 1e-9)
		assert.Equal(t, 0.0, metrics.AvgLoss)
	})

	t.Run("mixed pairs", func(t *testing.T) {
		start := time.Date(2021, time.January, 4, 0, 0, 0, 0, time.UTC)
		tradeLog := []*models.Trade{
			// +200 round trip
			models.NewTrade(start, models.SignalActionBuy, 100, 10, 1000, 1, 9000),
			models.NewTrade(start.AddDate(0, 0, 2), models.SignalActionSell, 120, 10, 1200, 1.2, 10200),
			// -100 round trip
			models.NewTrade(start.AddDate(0, 0, 4), models.SignalActionBuy, 100, 10, 1000, 1, 9200),
			models.NewTrade(start.AddDate(0, 0, 6), models.SignalActionSell, 90, 10, 900, 0.9, 10100),
		}
		curve := snapshotCurve([]float64{10000, 10200, 10100})

		metrics, err := Analyze(curve, tradeLog, 10000, models.DefaultRiskFreeRate)
		require.NoError(t, err)

		require.Len(t, metrics.TradePairs, 2)
		assert.InDelta(t, 200.0, metrics.TradePairs[0].Pnl, 1e-9)
		assert.InDelta(t, -100.0, metrics.TradePairs[1].Pnl, 1e-9)
		assert.Equal(t, 0.5, metrics.WinRate)
		assert.False(t, metrics.ProfitFactor.Infinite)
		assert.InDelta(t, 2.0, metrics.ProfitFactor.Value, 1e-9)
		assert.InDelta(t, 200.0, metrics.AvgWin, 1e-9)
		assert.InDelta(t, -100.0, metrics.AvgLoss, 1e-9)
	})

	t.Run("empty equity curve is an error", func(t *testing.T) {
		_, err := Analyze(nil, nil, 10000, models.DefaultRiskFreeRate)
		assert.ErrorIs(t, err, models.ErrNoData)
	})
}
