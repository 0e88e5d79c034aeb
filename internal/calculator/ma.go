package calculator

import (
	"errors"

	"SignalScanner/internal/model"
)

// CalculateEMA computes the exponential moving average of values with
// smoothing factor 2/(span+1). The recursion is seeded with the first value,
// so out[0] == values[0]. Undefined inputs keep the output undefined until
// the first defined value, which then seeds the recursion.
func CalculateEMA(values []model.Float, span int) ([]model.Float, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	alpha := 2.0 / float64(span+1)
	out := make([]model.Float, len(values))
	var prev model.Float
	for i, v := range values {
		switch {
		case !v.Valid:
			out[i] = prev
			continue
		case !prev.Valid:
			prev = v
		default:
			prev = model.Some(v.Value*alpha + prev.Value*(1-alpha))
		}
		out[i] = prev
	}
	return out, nil
}

// CalculateSMA computes the rolling simple moving average over period values.
// A point is undefined until period values are available or when any value in
// its window is undefined.
func CalculateSMA(values []model.Float, period int) ([]model.Float, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]model.Float, len(values))
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for _, v := range values[i-period+1 : i+1] {
			if !v.Valid {
				ok = false
				break
			}
			sum += v.Value
		}
		if ok {
			out[i] = model.Some(sum / float64(period))
		}
	}
	return out, nil
}

func extractCloses(bars []model.OHLCV) []model.Float {
	closes := make([]model.Float, len(bars))
	for i, b := range bars {
		closes[i] = model.Some(b.Close)
	}
	return closes
}
