package models

import "encoding/json"

// TradingDaysPerYear is the annualization base for CAGR, volatility and the
// Sharpe ratio.
const TradingDaysPerYear = 252.0

const DefaultRiskFreeRate = 0.02

// Ratio is a metric whose value may legitimately be infinite, e.g. the
// profit factor of a run with no losing trades. The sentinel is explicit
// rather than a numeric stand-in so consumers can match on it exhaustively.
type Ratio struct {
	Value    float64
	Infinite bool
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.Infinite {
		return json.Marshal(map[string]interface{}{
			"value":    nil,
			"infinite": true,
		})
	}

	return json.Marshal(map[string]interface{}{
		"value":    r.Value,
		"infinite": false,
	})
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var dto struct {
		Value    *float64 `json:"value"`
		Infinite bool     `json:"infinite"`
	}

	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	r.Infinite = dto.Infinite
	if dto.Value != nil {
		r.Value = *dto.Value
	} else {
		r.Value = 0
	}

	return nil
}

func NewRatio(value float64) Ratio {
	return Ratio{Value: value}
}

func NewInfiniteRatio() Ratio {
	return Ratio{Infinite: true}
}

type Metrics struct {
	TotalReturn    float64      `json:"total_return"`
	TotalReturnPct float64      `json:"total_return_pct"`
	Cagr           float64      `json:"cagr"`
	Volatility     float64      `json:"volatility"`
	SharpeRatio    float64      `json:"sharpe_ratio"`
	MaxDrawdown    float64      `json:"max_drawdown"`
	CalmarRatio    Ratio        `json:"calmar_ratio"`
	WinRate        float64      `json:"win_rate"`
	ProfitFactor   Ratio        `json:"profit_factor"`
	AvgWin         float64      `json:"avg_win"`
	AvgLoss        float64      `json:"avg_loss"`
	NumTrades      int          `json:"num_trades"`
	TradePairs     []*TradePair `json:"trade_pairs"`
	TradingDays    int          `json:"trading_days"`
	FinalValue     float64      `json:"final_value"`
}
