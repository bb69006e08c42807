package eventmodels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BacktestConfigYAML is the file-based run setup consumed by the CLI. Any
// field left at zero falls back to the engine defaults.
type BacktestConfigYAML struct {
	Symbol              string             `yaml:"symbol"`
	StartDate           string             `yaml:"start_date"`
	EndDate             string             `yaml:"end_date"`
	Strategy            string             `yaml:"strategy"`
	Params              map[string]float64 `yaml:"params"`
	InitialCapital      float64            `yaml:"initial_capital"`
	AllocationFraction  float64            `yaml:"allocation_fraction"`
	MinTradeValue       float64            `yaml:"min_trade_value"`
	CommissionRate      float64            `yaml:"commission_rate"`
	SlippageRate        float64            `yaml:"slippage_rate"`
	RiskFreeRate        float64            `yaml:"risk_free_rate"`
	ConfidenceThreshold float64            `yaml:"confidence_threshold"`
}

func (c *BacktestConfigYAML) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("BacktestConfigYAML: missing symbol")
	}

	if c.Strategy == "" {
		return fmt.Errorf("BacktestConfigYAML: missing strategy")
	}

	if c.InitialCapital < 0 {
		return fmt.Errorf("BacktestConfigYAML: initial_capital must be positive, found %v", c.InitialCapital)
	}

	return nil
}

func LoadBacktestConfigYAML(path string) (*BacktestConfigYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadBacktestConfigYAML: failed to read %s: %w", path, err)
	}

	var config BacktestConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("LoadBacktestConfigYAML: failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
