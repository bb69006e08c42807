package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/backtester/services"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
	"github.com/jiaming2012/backtest-engine/src/eventservices"
	"github.com/jiaming2012/backtest-engine/src/strategies"
	"github.com/jiaming2012/backtest-engine/src/utils"
)

func newEngine(config *eventmodels.BacktestConfigYAML) *services.BacktestEngine {
	costModel := models.NewDefaultCostModel()
	if config.CommissionRate > 0 {
		costModel.CommissionRate = config.CommissionRate
	}

	if config.SlippageRate > 0 {
		costModel.SlippageRate = config.SlippageRate
	}

	engineConfig := models.EngineConfig{
		InitialCapital:      config.InitialCapital,
		AllocationFraction:  config.AllocationFraction,
		MinTradeValue:       config.MinTradeValue,
		ConfidenceThreshold: config.ConfidenceThreshold,
		RiskFreeRate:        config.RiskFreeRate,
	}.ApplyDefaults()

	return services.NewBacktestEngine(costModel, engineConfig)
}

// loadCandles reads bars from the csv file when one is given, otherwise
// fetches them from polygon for the configured date range.
func loadCandles(ctx context.Context, config *eventmodels.BacktestConfigYAML, csvFile string) ([]*eventmodels.Candle, error) {
	symbol := eventmodels.NewStockSymbol(config.Symbol)

	if csvFile != "" {
		candles, err := eventservices.ImportCandlesFromCsv(csvFile)
		if err != nil {
			return nil, fmt.Errorf("loadCandles: %w", err)
		}

		return filterCandles(candles, config.StartDate, config.EndDate)
	}

	apiKey := os.Getenv("POLYGON_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("loadCandles: no csv file given and missing POLYGON_API_KEY environment variable")
	}

	if config.StartDate == "" || config.EndDate == "" {
		return nil, fmt.Errorf("loadCandles: fetching from polygon requires start_date and end_date")
	}

	from, err := utils.ParseDate(config.StartDate)
	if err != nil {
		return nil, fmt.Errorf("loadCandles: invalid start_date: %w", err)
	}

	to, err := utils.ParseDate(config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("loadCandles: invalid end_date: %w", err)
	}

	machine := eventservices.NewPolygonCandleMachine(apiKey)

	return machine.FetchDailyCandles(ctx, symbol, from, to)
}

func filterCandles(candles []*eventmodels.Candle, startDate, endDate string) ([]*eventmodels.Candle, error) {
	var from, to time.Time
	var err error

	if startDate != "" {
		if from, err = utils.ParseDate(startDate); err != nil {
			return nil, fmt.Errorf("filterCandles: invalid start_date: %w", err)
		}
	}

	if endDate != "" {
		if to, err = utils.ParseDate(endDate); err != nil {
			return nil, fmt.Errorf("filterCandles: invalid end_date: %w", err)
		}
	}

	var filtered []*eventmodels.Candle
	for _, c := range candles {
		if !from.IsZero() && c.Timestamp.Before(from) {
			continue
		}

		if !to.IsZero() && c.Timestamp.After(to) {
			break
		}

		filtered = append(filtered, c)
	}

	return filtered, nil
}

// parseStrategyClauses turns "buy_and_hold;momentum:lookback=10,threshold=0.02"
// into one spec per clause.
func parseStrategyClauses(s string) ([]models.StrategySpec, error) {
	var specs []models.StrategySpec
	for _, clause := range strings.Split(s, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		id := clause
		params := map[string]float64{}

		if idx := strings.Index(clause, ":"); idx >= 0 {
			id = clause[:idx]

			for _, pair := range strings.Split(clause[idx+1:], ",") {
				parts := strings.SplitN(pair, "=", 2)
				if len(parts) != 2 {
					return nil, fmt.Errorf("parseStrategyClauses: invalid param '%s': expected name=value", pair)
				}

				vals, err := utils.AtofSlice(parts[1])
				if err != nil {
					return nil, fmt.Errorf("parseStrategyClauses: %v", err)
				}

				params[strings.TrimSpace(parts[0])] = vals[0]
			}
		}

		specs = append(specs, models.NewStrategySpec(id, params))
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("parseStrategyClauses: no strategies given")
	}

	return specs, nil
}

func exportResult(result *models.BacktestResult, outDir string) {
	if outDir == "" {
		return
	}

	if err := eventservices.ExportBacktestResult(result, outDir); err != nil {
		log.Errorf("failed to export result: %v", err)
	}
}

var runCmd = &cobra.Command{
	Use:   "run --config backtest.yaml [--csv data.csv] [--outDir results]",
	Short: "Run a single strategy backtest",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := cmd.Flags().GetString("config")
		csvFile, _ := cmd.Flags().GetString("csv")
		outDir, _ := cmd.Flags().GetString("outDir")

		config, err := eventmodels.LoadBacktestConfigYAML(configFile)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		candles, err := loadCandles(cmd.Context(), config, csvFile)
		if err != nil {
			log.Fatalf("error loading candles: %v", err)
		}

		source, err := strategies.New(models.NewStrategySpec(config.Strategy, config.Params))
		if err != nil {
			log.Fatalf("error building strategy: %v", err)
		}

		engine := newEngine(config)

		result, err := engine.Run(eventmodels.NewStockSymbol(config.Symbol), candles, source)
		if err != nil {
			log.Fatalf("error running backtest: %v", err)
		}

		fmt.Println(result)

		exportResult(result, outDir)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare --config backtest.yaml --strategies \"buy_and_hold;momentum:lookback=10,threshold=0.02\"",
	Short: "Rank multiple strategies on the same data",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := cmd.Flags().GetString("config")
		csvFile, _ := cmd.Flags().GetString("csv")
		clauses, _ := cmd.Flags().GetString("strategies")

		config, err := eventmodels.LoadBacktestConfigYAML(configFile)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		candles, err := loadCandles(cmd.Context(), config, csvFile)
		if err != nil {
			log.Fatalf("error loading candles: %v", err)
		}

		specs, err := parseStrategyClauses(clauses)
		if err != nil {
			log.Fatalf("error parsing strategies: %v", err)
		}

		engine := newEngine(config)

		entries, err := engine.Compare(cmd.Context(), eventmodels.NewStockSymbol(config.Symbol), candles, specs)
		if err != nil {
			log.Fatalf("error comparing strategies: %v", err)
		}

		fmt.Println(services.RenderComparison(entries))
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep --config backtest.yaml --ranges \"short_window=5,10,20;long_window=30,50\"",
	Short: "Grid search the configured strategy's parameters",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := cmd.Flags().GetString("config")
		csvFile, _ := cmd.Flags().GetString("csv")
		rangesArg, _ := cmd.Flags().GetString("ranges")

		config, err := eventmodels.LoadBacktestConfigYAML(configFile)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		candles, err := loadCandles(cmd.Context(), config, csvFile)
		if err != nil {
			log.Fatalf("error loading candles: %v", err)
		}

		ranges, err := utils.ParseParamRanges(rangesArg)
		if err != nil {
			log.Fatalf("error parsing ranges: %v", err)
		}

		engine := newEngine(config)

		result, err := engine.Sweep(cmd.Context(), eventmodels.NewStockSymbol(config.Symbol), candles, config.Strategy, ranges)
		if err != nil {
			log.Fatalf("error sweeping parameters: %v", err)
		}

		fmt.Printf("Best: %s\n\n", result.BestSpec.Label())
		fmt.Println(services.RenderComparison(result.All))
	},
}

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Deterministic daily-bar stock backtester",
}

func main() {
	if err := utils.InitEnvironmentVariables("."); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	rootCmd.PersistentFlags().String("config", "backtest.yaml", "Path to the yaml run configuration.")
	rootCmd.PersistentFlags().String("csv", "", "Read candles from a csv file instead of polygon.")

	runCmd.Flags().String("outDir", "", "The directory to write the equity curve and trade log to.")
	compareCmd.Flags().String("strategies", "", "Semicolon-separated strategy clauses.")
	sweepCmd.Flags().String("ranges", "", "Semicolon-separated param ranges.")

	compareCmd.MarkFlagRequired("strategies")
	sweepCmd.MarkFlagRequired("ranges")

	rootCmd.AddCommand(runCmd, compareCmd, sweepCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
