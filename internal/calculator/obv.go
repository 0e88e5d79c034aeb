package calculator

import "SignalScanner/internal/model"

// CalculateOBV computes on-balance volume: the running sum of volume signed
// by the close-to-close direction. Unchanged closes add zero.
func CalculateOBV(bars []model.OHLCV) []model.Float {
	out := make([]model.Float, len(bars))
	total := 0.0
	for i := range bars {
		if i > 0 {
			switch {
			case bars[i].Close > bars[i-1].Close:
				total += bars[i].Volume
			case bars[i].Close < bars[i-1].Close:
				total -= bars[i].Volume
			}
		}
		out[i] = model.Some(total)
	}
	return out
}
