package store

import (
	"time"

	"SignalScanner/internal/model"
)

// NoopStore caches nothing. Used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LoadBars(_ string, _ int) ([]model.OHLCV, time.Time, error) {
	return nil, time.Time{}, nil
}
func (n *NoopStore) SaveBars(_ string, _ []model.OHLCV, _ time.Time) error { return nil }
func (n *NoopStore) Close() error                                          { return nil }
