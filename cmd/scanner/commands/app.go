package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"SignalScanner/internal/collector"
	"SignalScanner/internal/config"
	"SignalScanner/internal/metrics"
	"SignalScanner/internal/store"
	"SignalScanner/internal/strategy"
)

// app holds the components shared by serve and scan.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	registry  *prometheus.Registry
	store     store.BarStore
	collector *collector.Collector
}

func newApp(cfg *config.Config, log zerolog.Logger) *app {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	st := openStore(cfg, log)
	fetcher := newFetcher(cfg)
	if _, ok := st.(*store.NoopStore); !ok {
		fetcher = collector.NewCachingFetcher(fetcher, st, cfg.Database.CacheTTL, log)
	}
	log.Info().Str("source", fetcher.Name()).Strs("symbols", cfg.Symbols).Msg("data source ready")

	eval := strategy.NewEvaluator(strategy.WithOBVLookback(cfg.Strategy.OBVLookback))
	col := collector.NewCollector(fetcher, eval, cfg.DataSource.OutputSize, cfg.Scan.Workers, m, log)

	return &app{cfg: cfg, log: log, registry: reg, store: st, collector: col}
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error().Err(err).Msg("close store")
	}
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	ds := cfg.DataSource
	switch ds.Provider {
	case "yahoo":
		f := collector.NewYahooFetcher(ds.Timeout, cfg.Proxy)
		if ds.BaseURL != "" {
			f.BaseURL = ds.BaseURL
		}
		return f
	case "mock":
		return &collector.MockFetcher{Price: 100}
	default:
		return collector.NewTwelveDataFetcher(ds.BaseURL, ds.APIKey, ds.RequestsPerMinute, ds.Timeout, cfg.Proxy)
	}
}

func openStore(cfg *config.Config, log zerolog.Logger) store.BarStore {
	if cfg.Database.SQLitePath == "" {
		return store.NewNoopStore()
	}
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite store failed, caching disabled")
		return store.NewNoopStore()
	}
	return st
}
