package collector

import (
	"context"
	"math"
	"time"

	"SignalScanner/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	End    time.Time
	Data   map[string][]model.OHLCV // per-symbol fixed bars
	Errors map[string]error         // per-symbol failures
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, count int) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Data[symbol]; ok {
		if len(bars) > count {
			bars = bars[len(bars)-count:]
		}
		return bars, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return GenerateMockBars(m.Price, count, end), nil
}

// GenerateMockBars builds count daily bars ending at end. Closes follow a slow
// wave with alternating bar-to-bar moves so every indicator is defined.
func GenerateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	prev := basePrice
	for i := 0; i < count; i++ {
		swing := 0.004
		if i%2 == 1 {
			swing = -0.004
		}
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/12) + swing + float64(i)*0.0002)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   prev,
			High:   math.Max(p, prev) * 1.005,
			Low:    math.Min(p, prev) * 0.995,
			Close:  p,
			Volume: 1000000 + float64(i%7)*25000,
		}
		prev = p
	}
	return bars
}
