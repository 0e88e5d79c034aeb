package collector

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"SignalScanner/internal/calculator"
	"SignalScanner/internal/metrics"
	"SignalScanner/internal/model"
	"SignalScanner/internal/strategy"
)

// Collector fetches bars, runs the indicator pipeline and scores symbols.
type Collector struct {
	Fetcher    Fetcher
	Evaluator  *strategy.Evaluator
	OutputSize int
	Workers    int
	Metrics    *metrics.Metrics
	Log        zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, eval *strategy.Evaluator, outputSize, workers int, m *metrics.Metrics, log zerolog.Logger) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		Fetcher:    fetcher,
		Evaluator:  eval,
		OutputSize: outputSize,
		Workers:    workers,
		Metrics:    m,
		Log:        log,
	}
}

// Analyze scores one symbol. Failures are reported in the returned report's
// Error field rather than as an error.
func (c *Collector) Analyze(ctx context.Context, symbol string) model.ScoreReport {
	start := time.Now()
	report := c.analyze(ctx, symbol)
	took := time.Since(start)
	c.Metrics.ObserveAnalysis(symbol, report.Error, report.Score, took)

	ev := c.Log.Info()
	if !report.OK() {
		ev = c.Log.Warn().Str("error", report.Error).Str("detail", report.Detail)
	}
	ev.Str("symbol", symbol).
		Int("score", report.Score).
		Int("bars", report.Bars).
		Int("rows", report.Rows).
		Dur("took", took).
		Msg("symbol analyzed")
	return report
}

func (c *Collector) analyze(ctx context.Context, symbol string) model.ScoreReport {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.OutputSize)
	c.Metrics.ObserveFetch(c.Fetcher.Name(), err)
	if err != nil {
		return model.ScoreReport{Symbol: symbol, Error: model.ErrCodeFetchFailed, Detail: err.Error()}
	}
	return c.Score(&model.PriceSeries{Symbol: symbol, Bars: bars})
}

// Score runs the indicator pipeline and the evaluator over one series. It
// does no I/O.
func (c *Collector) Score(series *model.PriceSeries) model.ScoreReport {
	report := model.ScoreReport{Symbol: series.Symbol, Bars: len(series.Bars)}

	rows, err := calculator.Compute(series.Bars)
	if err != nil {
		report.Error = errorCode(err)
		report.Detail = err.Error()
		return report
	}
	report.Rows = len(rows)

	ev, err := c.Evaluator.Evaluate(rows)
	if err != nil {
		report.Error = errorCode(err)
		report.Detail = err.Error()
		return report
	}

	latest := rows[len(rows)-1]
	report.Price = latest.Close
	report.AsOf = latest.Time
	report.Score = ev.Score
	report.Conditions = ev.Conditions
	return report
}

// AnalyzeAll scores every symbol with at most Workers in flight. The result
// holds one report per input symbol in input order; a failing symbol never
// affects the others.
func (c *Collector) AnalyzeAll(ctx context.Context, symbols []string) []model.ScoreReport {
	reports := make([]model.ScoreReport, len(symbols))
	var g errgroup.Group
	g.SetLimit(c.Workers)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			reports[i] = c.Analyze(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrInsufficientHistory):
		return model.ErrCodeNotEnoughData
	case errors.Is(err, model.ErrInvalidSeries):
		return model.ErrCodeInvalidData
	default:
		return model.ErrCodeFetchFailed
	}
}
