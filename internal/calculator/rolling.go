package calculator

import (
	"math"

	"SignalScanner/internal/model"
)

// rollingHigh returns the highest High of the trailing period bars.
func rollingHigh(bars []model.OHLCV, period int) []model.Float {
	out := make([]model.Float, len(bars))
	for i := period - 1; i < len(bars); i++ {
		high := math.Inf(-1)
		for j := i - period + 1; j <= i; j++ {
			if bars[j].High > high {
				high = bars[j].High
			}
		}
		out[i] = model.Some(high)
	}
	return out
}

// rollingLow returns the lowest Low of the trailing period bars.
func rollingLow(bars []model.OHLCV, period int) []model.Float {
	out := make([]model.Float, len(bars))
	for i := period - 1; i < len(bars); i++ {
		low := math.Inf(1)
		for j := i - period + 1; j <= i; j++ {
			if bars[j].Low < low {
				low = bars[j].Low
			}
		}
		out[i] = model.Some(low)
	}
	return out
}

// ratio returns 100*num/den, undefined when either side is undefined or the
// denominator is zero.
func ratio(num, den model.Float) model.Float {
	if !num.Valid || !den.Valid || den.Value == 0 {
		return model.Undefined
	}
	return model.Some(100 * num.Value / den.Value)
}

func floats(values []float64) []model.Float {
	out := make([]model.Float, len(values))
	for i, v := range values {
		out[i] = model.Some(v)
	}
	return out
}
