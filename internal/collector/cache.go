package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"SignalScanner/internal/model"
	"SignalScanner/internal/store"
)

// CachingFetcher serves bars from a BarStore while they are younger than TTL
// and refreshes them from Inner otherwise. Store failures are logged and
// never fail a fetch.
type CachingFetcher struct {
	Inner Fetcher
	Store store.BarStore
	TTL   time.Duration
	Log   zerolog.Logger

	now func() time.Time
}

// NewCachingFetcher wraps inner with a store-backed cache.
func NewCachingFetcher(inner Fetcher, st store.BarStore, ttl time.Duration, log zerolog.Logger) *CachingFetcher {
	return &CachingFetcher{Inner: inner, Store: st, TTL: ttl, Log: log, now: time.Now}
}

func (c *CachingFetcher) Name() string { return c.Inner.Name() + "+cache" }

func (c *CachingFetcher) FetchDailyBars(ctx context.Context, symbol string, count int) ([]model.OHLCV, error) {
	bars, fetchedAt, err := c.Store.LoadBars(symbol, count)
	if err != nil {
		c.Log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache read failed")
	} else if len(bars) > 0 && c.now().Sub(fetchedAt) < c.TTL {
		c.Log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("bar cache hit")
		return bars, nil
	}

	bars, err = c.Inner.FetchDailyBars(ctx, symbol, count)
	if err != nil {
		return nil, err
	}
	if len(bars) > 0 {
		if err := c.Store.SaveBars(symbol, bars, c.now()); err != nil {
			c.Log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache write failed")
		}
	}
	return bars, nil
}
