package models

import (
	"time"

	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

type PortfolioSnapshot struct {
	Timestamp     time.Time `json:"timestamp"`
	Cash          float64   `json:"cash"`
	SharesHeld    float64   `json:"shares_held"`
	PositionValue float64   `json:"position_value"`
	TotalValue    float64   `json:"total_value"`
}

// PortfolioState is the mutable ledger owned exclusively by one engine run.
type PortfolioState struct {
	Cash          float64
	SharesHeld    float64
	TradeLog      []*Trade
	EquityCurve   []*PortfolioSnapshot
	SkippedTrades []*SkippedTrade
}

// Snapshot appends one equity curve point for the given candle. The identity
// TotalValue == Cash + SharesHeld * Close holds exactly by construction.
func (p *PortfolioState) Snapshot(c *eventmodels.Candle) *PortfolioSnapshot {
	positionValue := p.SharesHeld * c.Close
	snapshot := &PortfolioSnapshot{
		Timestamp:     c.Timestamp,
		Cash:          p.Cash,
		SharesHeld:    p.SharesHeld,
		PositionValue: positionValue,
		TotalValue:    p.Cash + positionValue,
	}

	p.EquityCurve = append(p.EquityCurve, snapshot)

	return snapshot
}

func (p *PortfolioState) RecordSkippedTrade(timestamp time.Time, reason string) {
	p.SkippedTrades = append(p.SkippedTrades, &SkippedTrade{
		Timestamp: timestamp,
		Reason:    reason,
	})
}

func NewPortfolioState(initialCapital float64) *PortfolioState {
	return &PortfolioState{
		Cash:          initialCapital,
		SharesHeld:    0,
		TradeLog:      []*Trade{},
		EquityCurve:   []*PortfolioSnapshot{},
		SkippedTrades: []*SkippedTrade{},
	}
}
