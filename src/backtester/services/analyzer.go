package services

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
)

func pairTrades(tradeLog []*models.Trade, initialCapital float64) []*models.TradePair {
	pairs := []*models.TradePair{}

	cashBefore := initialCapital
	var openBuy *models.Trade

	for _, trade := range tradeLog {
		switch trade.Action {
		case models.SignalActionBuy:
			openBuy = trade
		case models.SignalActionSell:
			if openBuy == nil {
				continue
			}

			// the cash deltas capture commission and slippage on both legs
			entryCost := cashBefore - openBuy.CashAfter
			pnl := trade.CashAfter - cashBefore

			pair := &models.TradePair{
				EntryDate: openBuy.Timestamp,
				ExitDate:  trade.Timestamp,
				Pnl:       pnl,
			}

			if entryCost > 0 {
				pair.ReturnPct = pnl / entryCost
			}

			pairs = append(pairs, pair)
			cashBefore = trade.CashAfter
			openBuy = nil
		}
	}

	return pairs
}

func maxDrawdown(equityCurve []*models.PortfolioSnapshot) float64 {
	runningMax := equityCurve[0].TotalValue
	worst := 0.0

	for _, snapshot := range equityCurve {
		if snapshot.TotalValue > runningMax {
			runningMax = snapshot.TotalValue
		}

		if runningMax > 0 {
			drawdown := (snapshot.TotalValue - runningMax) / runningMax
			if drawdown < worst {
				worst = drawdown
			}
		}
	}

	return worst
}

// Analyze computes the performance report for a completed run. The equity
// curve must be non-empty; the trade log may be.
func Analyze(equityCurve []*models.PortfolioSnapshot, tradeLog []*models.Trade, initialCapital, riskFreeRate float64) (*models.Metrics, error) {
	if len(equityCurve) == 0 {
		return nil, fmt.Errorf("Analyze: empty equity curve: %w", models.ErrNoData)
	}

	if initialCapital <= 0 {
		return nil, fmt.Errorf("Analyze: initial capital must be positive, found %v: %w", initialCapital, models.ErrInvalidParameter)
	}

	finalValue := equityCurve[len(equityCurve)-1].TotalValue

	metrics := &models.Metrics{
		FinalValue:     finalValue,
		TotalReturn:    finalValue - initialCapital,
		TotalReturnPct: (finalValue - initialCapital) / initialCapital,
	}

	// the forced liquidation snapshot shares its bar with the previous one
	tradingDays := 1
	for i := 1; i < len(equityCurve); i++ {
		if !equityCurve[i].Timestamp.Equal(equityCurve[i-1].Timestamp) {
			tradingDays++
		}
	}

	metrics.TradingDays = tradingDays

	years := float64(tradingDays) / models.TradingDaysPerYear
	if years > 0 && finalValue > 0 {
		metrics.Cagr = math.Pow(finalValue/initialCapital, 1.0/years) - 1.0
	} else {
		metrics.Cagr = metrics.TotalReturnPct
	}

	dailyReturns := make([]float64, 0, len(equityCurve)-1)
	for i := 1; i < len(equityCurve); i++ {
		prev := equityCurve[i-1].TotalValue
		if prev > 0 {
			dailyReturns = append(dailyReturns, (equityCurve[i].TotalValue-prev)/prev)
		}
	}

	if len(dailyReturns) >= 2 {
		sd, err := stats.StandardDeviationSample(dailyReturns)
		if err != nil {
			return nil, fmt.Errorf("Analyze: failed to calculate the standard deviation: %v", err)
		}

		metrics.Volatility = sd * math.Sqrt(models.TradingDaysPerYear)
	}

	if metrics.Volatility > 0 {
		metrics.SharpeRatio = (metrics.Cagr - riskFreeRate) / metrics.Volatility
	}

	metrics.MaxDrawdown = maxDrawdown(equityCurve)

	if metrics.MaxDrawdown == 0 {
		metrics.CalmarRatio = models.NewInfiniteRatio()
	} else {
		metrics.CalmarRatio = models.NewRatio(metrics.Cagr / math.Abs(metrics.MaxDrawdown))
	}

	pairs := pairTrades(tradeLog, initialCapital)
	metrics.TradePairs = pairs
	metrics.NumTrades = len(tradeLog)

	var wins, losses int
	var winsAmount, lossesAmount float64
	for _, pair := range pairs {
		if pair.Pnl > 0 {
			wins++
			winsAmount += pair.Pnl
		} else {
			losses++
			lossesAmount += math.Abs(pair.Pnl)
		}
	}

	if len(pairs) > 0 {
		metrics.WinRate = float64(wins) / float64(len(pairs))
	}

	if lossesAmount > 0 {
		metrics.ProfitFactor = models.NewRatio(winsAmount / lossesAmount)
	} else if winsAmount > 0 {
		metrics.ProfitFactor = models.NewInfiniteRatio()
	} else {
		metrics.ProfitFactor = models.NewRatio(0)
	}

	if wins > 0 {
		metrics.AvgWin = winsAmount / float64(wins)
	}

	if losses > 0 {
		metrics.AvgLoss = -lossesAmount / float64(losses)
	}

	return metrics, nil
}
