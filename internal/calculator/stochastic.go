package calculator

import (
	"errors"

	"SignalScanner/internal/model"
)

// StochasticResult holds %K and its %D smoothing.
type StochasticResult struct {
	K []model.Float
	D []model.Float
}

// CalculateStochastic computes %K over kPeriod bars and %D as the dPeriod SMA
// of %K. %K is undefined when the high-low range of the window is zero.
func CalculateStochastic(bars []model.OHLCV, kPeriod, dPeriod int) (*StochasticResult, error) {
	if kPeriod <= 0 {
		return nil, errors.New("period must be positive")
	}
	highs := rollingHigh(bars, kPeriod)
	lows := rollingLow(bars, kPeriod)

	k := make([]model.Float, len(bars))
	for i, b := range bars {
		if !highs[i].Valid || !lows[i].Valid {
			continue
		}
		k[i] = ratio(model.Some(b.Close-lows[i].Value), model.Some(highs[i].Value-lows[i].Value))
	}
	d, err := CalculateSMA(k, dPeriod)
	if err != nil {
		return nil, err
	}
	return &StochasticResult{K: k, D: d}, nil
}
