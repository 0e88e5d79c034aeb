// Package store caches fetched daily bars so repeated scans stay inside the
// quote provider's rate limits.
package store

import (
	"time"

	"SignalScanner/internal/model"
)

// BarStore persists daily bars per symbol together with the time they were
// last fetched from the provider.
type BarStore interface {
	// LoadBars returns the newest limit bars of symbol in chronological order
	// and the time of the last SaveBars call. A zero fetchedAt means nothing
	// is cached.
	LoadBars(symbol string, limit int) (bars []model.OHLCV, fetchedAt time.Time, err error)
	SaveBars(symbol string, bars []model.OHLCV, fetchedAt time.Time) error
	Close() error
}
