package calculator

import (
	"errors"
	"math"

	"SignalScanner/internal/model"
)

// CalculateADX computes the average directional index. True range and
// directional movement are smoothed with a simple rolling mean over period,
// and ADX is the rolling mean of DX over the same period. DX is undefined
// when +DI + -DI is zero and DI is undefined when smoothed TR is zero.
func CalculateADX(bars []model.OHLCV, period int) ([]model.Float, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	n := len(bars)
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i, b := range bars {
		if i == 0 {
			tr[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		tr[i] = math.Max(b.High-b.Low, math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))

		up := b.High - bars[i-1].High
		down := bars[i-1].Low - b.Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	atr, err := CalculateSMA(floats(tr), period)
	if err != nil {
		return nil, err
	}
	plusSmoothed, err := CalculateSMA(floats(plusDM), period)
	if err != nil {
		return nil, err
	}
	minusSmoothed, err := CalculateSMA(floats(minusDM), period)
	if err != nil {
		return nil, err
	}

	dx := make([]model.Float, n)
	for i := 0; i < n; i++ {
		plusDI := ratio(plusSmoothed[i], atr[i])
		minusDI := ratio(minusSmoothed[i], atr[i])
		if !plusDI.Valid || !minusDI.Valid {
			continue
		}
		dx[i] = ratio(model.Some(math.Abs(plusDI.Value-minusDI.Value)), model.Some(plusDI.Value+minusDI.Value))
	}
	return CalculateSMA(dx, period)
}
