package models

import (
	"time"
)

// Trade is one executed order. Immutable once appended to the trade log.
type Trade struct {
	Timestamp  time.Time    `json:"timestamp"`
	Action     SignalAction `json:"action"`
	Price      float64      `json:"price"`
	Shares     float64      `json:"shares"`
	GrossValue float64      `json:"gross_value"`
	Commission float64      `json:"commission"`
	CashAfter  float64      `json:"cash_after"`
}

func NewTrade(timestamp time.Time, action SignalAction, price, shares, grossValue, commission, cashAfter float64) *Trade {
	return &Trade{
		Timestamp:  timestamp,
		Action:     action,
		Price:      price,
		Shares:     shares,
		GrossValue: grossValue,
		Commission: commission,
		CashAfter:  cashAfter,
	}
}

// SkippedTrade records a BUY signal the engine declined to act on. It is a
// diagnostic no-op, distinguishable from a genuine trade in the result.
type SkippedTrade struct {
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

// TradePair is a matched BUY/SELL round trip used by the analyzer.
type TradePair struct {
	EntryDate time.Time `json:"entry_date"`
	ExitDate  time.Time `json:"exit_date"`
	Pnl       float64   `json:"pnl"`
	ReturnPct float64   `json:"return_pct"`
}
