package eventservices

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// ImportCandlesFromCsv reads daily bars from a csv file with a
// date,open,high,low,close,volume header and returns them sorted ascending
// by timestamp.
func ImportCandlesFromCsv(path string) ([]*eventmodels.Candle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ImportCandlesFromCsv: error opening %s: %w", path, err)
	}

	defer file.Close()

	var dtos eventmodels.CandleDTOs
	if err := gocsv.UnmarshalFile(file, &dtos); err != nil {
		return nil, fmt.Errorf("ImportCandlesFromCsv: error unmarshalling %s: %w", path, err)
	}

	if len(dtos) == 0 {
		return nil, fmt.Errorf("ImportCandlesFromCsv: %s is empty: %w", path, models.ErrNoData)
	}

	candles, err := dtos.ConvertToCandles()
	if err != nil {
		return nil, fmt.Errorf("ImportCandlesFromCsv: %w", err)
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	log.Infof("imported %d candles from %s", len(candles), path)

	return candles, nil
}

// ExportCandlesToCsv writes candles in the same format ImportCandlesFromCsv
// reads, so fetched data can be replayed offline.
func ExportCandlesToCsv(candles []*eventmodels.Candle, path string) error {
	if len(candles) == 0 {
		return fmt.Errorf("ExportCandlesToCsv: %w", models.ErrNoData)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ExportCandlesToCsv: error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ExportCandlesToCsv: error creating %s: %w", path, err)
	}

	defer file.Close()

	dtos := make(eventmodels.CandleDTOs, 0, len(candles))
	for _, c := range candles {
		dtos = append(dtos, c.ToDTO())
	}

	if err := gocsv.MarshalFile(&dtos, file); err != nil {
		return fmt.Errorf("ExportCandlesToCsv: error marshalling %s: %w", path, err)
	}

	log.Infof("exported %d candles to %s", len(candles), path)

	return nil
}

type equityCurveRowDTO struct {
	Date          string  `csv:"date"`
	Cash          float64 `csv:"cash"`
	SharesHeld    float64 `csv:"shares_held"`
	PositionValue float64 `csv:"position_value"`
	TotalValue    float64 `csv:"total_value"`
}

type tradeRowDTO struct {
	Date       string  `csv:"date"`
	Action     string  `csv:"action"`
	Price      float64 `csv:"price"`
	Shares     float64 `csv:"shares"`
	GrossValue float64 `csv:"gross_value"`
	Commission float64 `csv:"commission"`
	CashAfter  float64 `csv:"cash_after"`
}

// ExportBacktestResult writes the result's equity curve and trade log as two
// csv files under outdir, named after the run id.
func ExportBacktestResult(result *models.BacktestResult, outdir string) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return fmt.Errorf("ExportBacktestResult: error creating directory: %w", err)
	}

	curveRows := make([]*equityCurveRowDTO, 0, len(result.EquityCurve))
	for _, snapshot := range result.EquityCurve {
		curveRows = append(curveRows, &equityCurveRowDTO{
			Date:          snapshot.Timestamp.Format(time.RFC3339),
			Cash:          snapshot.Cash,
			SharesHeld:    snapshot.SharesHeld,
			PositionValue: snapshot.PositionValue,
			TotalValue:    snapshot.TotalValue,
		})
	}

	curvePath := filepath.Join(outdir, fmt.Sprintf("%s-equity-curve.csv", result.RunID))
	if err := marshalCsvFile(curvePath, &curveRows); err != nil {
		return fmt.Errorf("ExportBacktestResult: %w", err)
	}

	tradeRows := make([]*tradeRowDTO, 0, len(result.TradeLog))
	for _, trade := range result.TradeLog {
		tradeRows = append(tradeRows, &tradeRowDTO{
			Date:       trade.Timestamp.Format(time.RFC3339),
			Action:     string(trade.Action),
			Price:      trade.Price,
			Shares:     trade.Shares,
			GrossValue: trade.GrossValue,
			Commission: trade.Commission,
			CashAfter:  trade.CashAfter,
		})
	}

	tradesPath := filepath.Join(outdir, fmt.Sprintf("%s-trades.csv", result.RunID))
	if err := marshalCsvFile(tradesPath, &tradeRows); err != nil {
		return fmt.Errorf("ExportBacktestResult: %w", err)
	}

	log.Infof("exported run %s to %s", result.RunID, outdir)

	return nil
}

func marshalCsvFile(path string, rows interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("marshalCsvFile: error creating %s: %w", path, err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("marshalCsvFile: error marshalling %s: %w", path, err)
	}

	return nil
}
