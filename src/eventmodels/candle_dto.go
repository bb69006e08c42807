package eventmodels

import (
	"fmt"
	"time"
)

type CandleDTO struct {
	Date   string  `csv:"date" json:"date"`
	Open   float64 `csv:"open" json:"open"`
	High   float64 `csv:"high" json:"high"`
	Low    float64 `csv:"low" json:"low"`
	Close  float64 `csv:"close" json:"close"`
	Volume float64 `csv:"volume" json:"volume"`
}

func (c *CandleDTO) ToModel() (*Candle, error) {
	t, err := time.Parse(time.RFC3339, c.Date)
	if err != nil {
		t, err = time.Parse("2006-01-02", c.Date)
		if err != nil {
			return nil, fmt.Errorf("CandleDTO.ToModel: error parsing date %s: %w", c.Date, err)
		}
	}

	return NewCandle(t, c.Open, c.High, c.Low, c.Close, c.Volume), nil
}

func (c *Candle) ToDTO() *CandleDTO {
	return &CandleDTO{
		Date:   c.Timestamp.Format(time.RFC3339),
		Open:   c.Open,
		High:   c.High,
		Low:    c.Low,
		Close:  c.Close,
		Volume: c.Volume,
	}
}

type CandleDTOs []*CandleDTO

func (cs CandleDTOs) ConvertToCandles() ([]*Candle, error) {
	candles := make([]*Candle, 0, len(cs))
	for _, dto := range cs {
		c, err := dto.ToModel()
		if err != nil {
			return nil, err
		}

		candles = append(candles, c)
	}

	return candles, nil
}
