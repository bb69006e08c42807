package eventservices

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	polygonmodels "github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// PolygonCandleMachine fetches adjusted daily aggregate bars from the
// polygon.io rest api.
type PolygonCandleMachine struct {
	Client *polygon.Client
}

func NewPolygonCandleMachine(apiKey string) *PolygonCandleMachine {
	return &PolygonCandleMachine{
		Client: polygon.New(apiKey),
	}
}

// FetchDailyCandles returns the symbol's daily bars between from and to,
// inclusive, in ascending timestamp order. An empty window is an error: the
// caller asked for data that does not exist.
func (m *PolygonCandleMachine) FetchDailyCandles(ctx context.Context, symbol eventmodels.StockSymbol, from, to time.Time) ([]*eventmodels.Candle, error) {
	log.Debugf("fetching polygon daily candles for symbol %s", symbol)

	params := polygonmodels.ListAggsParams{
		Ticker:     symbol.String(),
		Multiplier: 1,
		Timespan:   polygonmodels.Day,
		From:       polygonmodels.Millis(from),
		To:         polygonmodels.Millis(to),
	}.WithOrder(polygonmodels.Asc).WithAdjusted(true)

	iter := m.Client.ListAggs(ctx, params)

	var candles []*eventmodels.Candle
	for iter.Next() {
		item := iter.Item()

		candles = append(candles, eventmodels.NewCandle(
			time.Time(item.Timestamp).UTC(),
			item.Open,
			item.High,
			item.Low,
			item.Close,
			item.Volume,
		))
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("FetchDailyCandles: %s: %w", symbol, err)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("FetchDailyCandles: %s has no bars between %s and %s: %w", symbol, from.Format("2006-01-02"), to.Format("2006-01-02"), models.ErrNoData)
	}

	log.Infof("fetched %d daily candles for %s", len(candles), symbol)

	return candles, nil
}
