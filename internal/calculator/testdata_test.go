package calculator

import (
	"math"
	"time"

	"SignalScanner/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds daily bars with a fixed +/-spread high-low range.
func barsFromCloses(closes []float64, spread float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		bars[i] = model.OHLCV{
			Time:   day0.AddDate(0, 0, i),
			Open:   open,
			High:   c + spread,
			Low:    c - spread,
			Close:  c,
			Volume: 1000 + float64(i),
		}
	}
	return bars
}

// zigzagBars alternates up and down closes around a slow sine wave so every
// window has gains, losses and a non-zero range.
func zigzagBars(n int) []model.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		noise := 0.8
		if i%2 == 1 {
			noise = -0.8
		}
		closes[i] = 100 + 0.05*float64(i) + 5*math.Sin(float64(i)/10) + noise
	}
	return barsFromCloses(closes, 1)
}

func flatBars(n int, price float64) []model.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return barsFromCloses(closes, 0)
}

func values(fs []model.Float) []float64 {
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = f.Value
	}
	return out
}
