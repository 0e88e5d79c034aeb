package model

import (
	"fmt"
	"math"
	"time"
)

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the raw daily bars of one symbol in chronological order.
type PriceSeries struct {
	Symbol string
	Bars   []OHLCV
}

// ValidateBars checks that timestamps are strictly increasing and every
// price and volume is finite and non-negative.
func ValidateBars(bars []OHLCV) error {
	for i, b := range bars {
		for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: bar %d (%s) has invalid value %v", ErrInvalidSeries, i, b.Time.Format("2006-01-02"), v)
			}
		}
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d (%s) is not after %s", ErrInvalidSeries, i,
				b.Time.Format("2006-01-02"), bars[i-1].Time.Format("2006-01-02"))
		}
	}
	return nil
}
