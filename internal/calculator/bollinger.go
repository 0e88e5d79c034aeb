package calculator

import (
	"errors"
	"math"

	"SignalScanner/internal/model"
)

// BollingerResult holds the three bands.
type BollingerResult struct {
	Upper  []model.Float
	Middle []model.Float
	Lower  []model.Float
}

// CalculateBollinger computes bands at numStd population standard deviations
// (denominator N) around the period SMA of close.
func CalculateBollinger(bars []model.OHLCV, period int, numStd float64) (*BollingerResult, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	res := &BollingerResult{
		Upper:  make([]model.Float, len(bars)),
		Middle: make([]model.Float, len(bars)),
		Lower:  make([]model.Float, len(bars)),
	}
	for i := period - 1; i < len(bars); i++ {
		window := bars[i-period+1 : i+1]

		sum := 0.0
		for _, b := range window {
			sum += b.Close
		}
		sma := sum / float64(period)

		squareSum := 0.0
		for _, b := range window {
			diff := b.Close - sma
			squareSum += diff * diff
		}
		width := numStd * math.Sqrt(squareSum/float64(period))

		res.Middle[i] = model.Some(sma)
		res.Upper[i] = model.Some(sma + width)
		res.Lower[i] = model.Some(sma - width)
	}
	return res, nil
}
