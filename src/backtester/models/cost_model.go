package models

const (
	DefaultCommissionRate = 0.001
	DefaultSlippageRate   = 0.0005
)

// CostModel charges commission and slippage on both sides of a round trip.
// Slippage models adverse execution: it is added to the cost of a buy and
// subtracted from the proceeds of a sell.
type CostModel struct {
	CommissionRate float64 `json:"commission_rate"`
	SlippageRate   float64 `json:"slippage_rate"`
}

func (m CostModel) ApplyBuyCost(price, shares float64) (grossValue, commission, totalCost float64) {
	grossValue = price * shares
	commission = m.CommissionRate * grossValue
	slippage := m.SlippageRate * grossValue

	return grossValue, commission, grossValue + commission + slippage
}

func (m CostModel) ApplySellProceeds(price, shares float64) (grossValue, commission, netProceeds float64) {
	grossValue = price * shares
	commission = m.CommissionRate * grossValue
	slippage := m.SlippageRate * grossValue

	return grossValue, commission, grossValue - commission - slippage
}

func NewCostModel(commissionRate, slippageRate float64) CostModel {
	return CostModel{
		CommissionRate: commissionRate,
		SlippageRate:   slippageRate,
	}
}

func NewDefaultCostModel() CostModel {
	return NewCostModel(DefaultCommissionRate, DefaultSlippageRate)
}
