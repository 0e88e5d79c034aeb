package calculator

import "SignalScanner/internal/model"

// MACDResult holds the MACD line, its signal line and the histogram.
type MACDResult struct {
	MACD      []model.Float
	Signal    []model.Float
	Histogram []model.Float
}

// CalculateMACD computes EMA(fast) - EMA(slow) of close, its EMA(signal)
// and the difference of the two.
func CalculateMACD(bars []model.OHLCV, fast, slow, signal int) (*MACDResult, error) {
	closes := extractCloses(bars)
	emaFast, err := CalculateEMA(closes, fast)
	if err != nil {
		return nil, err
	}
	emaSlow, err := CalculateEMA(closes, slow)
	if err != nil {
		return nil, err
	}

	line := make([]model.Float, len(bars))
	for i := range bars {
		if emaFast[i].Valid && emaSlow[i].Valid {
			line[i] = model.Some(emaFast[i].Value - emaSlow[i].Value)
		}
	}
	sig, err := CalculateEMA(line, signal)
	if err != nil {
		return nil, err
	}

	hist := make([]model.Float, len(bars))
	for i := range bars {
		if line[i].Valid && sig[i].Valid {
			hist[i] = model.Some(line[i].Value - sig[i].Value)
		}
	}
	return &MACDResult{MACD: line, Signal: sig, Histogram: hist}, nil
}
