package calculator

import (
	"errors"

	"SignalScanner/internal/model"
)

// CalculateRSI computes the relative strength index using simple rolling
// means of gains and losses. The first bar contributes a zero change.
// RSI is undefined wherever the mean loss of the window is zero.
func CalculateRSI(bars []model.OHLCV, period int) ([]model.Float, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	gains := make([]float64, len(bars))
	losses := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains[i] = change
		} else if change < 0 {
			losses[i] = -change
		}
	}

	avgGain, err := CalculateSMA(floats(gains), period)
	if err != nil {
		return nil, err
	}
	avgLoss, err := CalculateSMA(floats(losses), period)
	if err != nil {
		return nil, err
	}

	out := make([]model.Float, len(bars))
	for i := range bars {
		if !avgGain[i].Valid || !avgLoss[i].Valid || avgLoss[i].Value == 0 {
			continue
		}
		rs := avgGain[i].Value / avgLoss[i].Value
		out[i] = model.Some(100.0 - 100.0/(1.0+rs))
	}
	return out, nil
}
