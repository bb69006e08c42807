package models

import "fmt"

const (
	DefaultAllocationFraction  = 0.95
	DefaultMinTradeValue       = 100.0
	DefaultConfidenceThreshold = 0.5
)

// EngineConfig holds the per-run knobs of the replay loop. The zero values of
// the optional fields are replaced with defaults by ApplyDefaults.
type EngineConfig struct {
	InitialCapital      float64 `json:"initial_capital"`
	AllocationFraction  float64 `json:"allocation_fraction"`
	MinTradeValue       float64 `json:"min_trade_value"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	RiskFreeRate        float64 `json:"risk_free_rate"`
}

func (c EngineConfig) ApplyDefaults() EngineConfig {
	if c.AllocationFraction == 0 {
		c.AllocationFraction = DefaultAllocationFraction
	}

	if c.MinTradeValue == 0 {
		c.MinTradeValue = DefaultMinTradeValue
	}

	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = DefaultConfidenceThreshold
	}

	if c.RiskFreeRate == 0 {
		c.RiskFreeRate = DefaultRiskFreeRate
	}

	return c
}

func (c EngineConfig) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("EngineConfig.Validate: initial capital must be positive, found %v: %w", c.InitialCapital, ErrInvalidParameter)
	}

	if c.AllocationFraction <= 0 || c.AllocationFraction > 1 {
		return fmt.Errorf("EngineConfig.Validate: allocation fraction must be in (0, 1], found %v: %w", c.AllocationFraction, ErrInvalidParameter)
	}

	if c.MinTradeValue < 0 {
		return fmt.Errorf("EngineConfig.Validate: min trade value must be non-negative, found %v: %w", c.MinTradeValue, ErrInvalidParameter)
	}

	return nil
}

func NewEngineConfig(initialCapital float64) EngineConfig {
	return EngineConfig{
		InitialCapital: initialCapital,
	}.ApplyDefaults()
}
