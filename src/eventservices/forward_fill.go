package eventservices

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/backtest-engine/src/backtester/models"
	"github.com/jiaming2012/backtest-engine/src/eventmodels"
)

// ForwardFillCandles inserts synthetic bars wherever the series skips more
// than one interval, carrying the prior close forward with zero volume. The
// input must be sorted ascending; duplicate timestamps are collapsed to the
// first occurrence.
func ForwardFillCandles(candles []*eventmodels.Candle, interval time.Duration) ([]*eventmodels.Candle, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("ForwardFillCandles: %w", models.ErrNoData)
	}

	if interval <= 0 {
		return nil, fmt.Errorf("ForwardFillCandles: interval must be positive, got %v: %w", interval, models.ErrInvalidParameter)
	}

	filled := make([]*eventmodels.Candle, 0, len(candles))
	filled = append(filled, candles[0])

	var inserted int
	for _, c := range candles[1:] {
		prev := filled[len(filled)-1]

		if !c.Timestamp.After(prev.Timestamp) {
			log.Warnf("ForwardFillCandles: dropping out-of-order bar at %s", c.Timestamp.Format(time.RFC3339))
			continue
		}

		for gap := prev.Timestamp.Add(interval); gap.Before(c.Timestamp); gap = gap.Add(interval) {
			filled = append(filled, eventmodels.NewCandle(gap, prev.Close, prev.Close, prev.Close, prev.Close, 0))
			inserted++
		}

		filled = append(filled, c)
	}

	if inserted > 0 {
		log.Infof("forward filled %d missing bars", inserted)
	}

	return filled, nil
}
