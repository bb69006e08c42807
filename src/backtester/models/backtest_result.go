package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// BacktestResult is the sole output artifact of one engine run. Immutable
// once returned; JSON-serializable for the presentation layer.
type BacktestResult struct {
	RunID          uuid.UUID                `json:"run_id"`
	StrategyID     string                   `json:"strategy_id"`
	Symbol         eventmodels.StockSymbol  `json:"symbol"`
	StartDate      time.Time                `json:"start_date"`
	EndDate        time.Time                `json:"end_date"`
	InitialCapital float64                  `json:"initial_capital"`
	FinalValue     float64                  `json:"final_value"`
	TradeLog       []*Trade                 `json:"trade_log"`
	EquityCurve    []*PortfolioSnapshot     `json:"equity_curve"`
	SkippedTrades  []*SkippedTrade          `json:"skipped_trades,omitempty"`
	Metrics        *Metrics                 `json:"metrics"`
	Benchmark      *Metrics                 `json:"benchmark,omitempty"`
}

func formatRatio(p *message.Printer, r Ratio) string {
	if r.Infinite {
		return "Inf"
	}

	return p.Sprintf("%.2f", r.Value)
}

func (r *BacktestResult) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	display.WriteString(fmt.Sprintf("Backtest %s on %s (%s - %s):\n", r.StrategyID, r.Symbol, r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02")))

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")

	table.Append([]string{"Initial Capital", p.Sprintf("$%.2f", r.InitialCapital)})
	table.Append([]string{"Final Value", p.Sprintf("$%.2f", r.FinalValue)})

	if r.Metrics != nil {
		table.Append([]string{"Total Return", p.Sprintf("%.2f%%", r.Metrics.TotalReturnPct*100)})
		table.Append([]string{"CAGR", p.Sprintf("%.2f%%", r.Metrics.Cagr*100)})
		table.Append([]string{"Volatility", p.Sprintf("%.2f%%", r.Metrics.Volatility*100)})
		table.Append([]string{"Sharpe Ratio", p.Sprintf("%.2f", r.Metrics.SharpeRatio)})
		table.Append([]string{"Max Drawdown", p.Sprintf("%.2f%%", r.Metrics.MaxDrawdown*100)})
		table.Append([]string{"Calmar Ratio", formatRatio(p, r.Metrics.CalmarRatio)})
		table.Append([]string{"Win Rate", p.Sprintf("%.2f%%", r.Metrics.WinRate*100)})
		table.Append([]string{"Profit Factor", formatRatio(p, r.Metrics.ProfitFactor)})
		table.Append([]string{"Trades", fmt.Sprintf("%d", r.Metrics.NumTrades)})
	}

	table.Render()

	return display.String()
}

func NewBacktestResult(strategyID string, symbol eventmodels.StockSymbol, startDate, endDate time.Time, initialCapital float64) *BacktestResult {
	// the run id is a content hash, not a random uuid: identical inputs must
	// reproduce identical results byte for byte
	seed := fmt.Sprintf("%s|%s|%s|%s|%v", strategyID, symbol, startDate.Format(time.RFC3339), endDate.Format(time.RFC3339), initialCapital)

	return &BacktestResult{
		RunID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)),
		StrategyID:     strategyID,
		Symbol:         symbol,
		StartDate:      startDate,
		EndDate:        endDate,
		InitialCapital: initialCapital,
	}
}
