package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScanner/internal/collector"
	"SignalScanner/internal/config"
	"SignalScanner/internal/model"
)

func TestPrintTable(t *testing.T) {
	reports := []model.ScoreReport{
		{Symbol: "AAPL", Price: 190.5, Score: 2, AsOf: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Conditions: model.ConditionSet{model.CondTrendUp: true, model.CondStrongTrend: true}},
		{Symbol: "XYZ", Error: model.ErrCodeNotEnoughData, Detail: "120 bars"},
	}
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, reports))

	out := buf.String()
	assert.Contains(t, out, "RANK")
	assert.Regexp(t, `1\s+AAPL\s+2/7\s+190\.50\s+2024-03-01\s+EMA50>EMA200, ADX>25`, out)
	assert.Regexp(t, `-\s+XYZ\s+-\s+-\s+-\s+not_enough_data 120 bars`, out)
}

func TestNewFetcher(t *testing.T) {
	cfg := &config.Config{}
	cfg.DataSource.Provider = "yahoo"
	cfg.DataSource.BaseURL = "http://localhost:9999"
	f := newFetcher(cfg)
	require.IsType(t, &collector.YahooFetcher{}, f)
	assert.Equal(t, "http://localhost:9999", f.(*collector.YahooFetcher).BaseURL)

	cfg.DataSource.Provider = "mock"
	assert.Equal(t, "mock", newFetcher(cfg).Name())

	cfg.DataSource.Provider = "twelvedata"
	assert.Equal(t, "twelvedata", newFetcher(cfg).Name())
}
