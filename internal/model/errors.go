package model

import "errors"

var (
	// ErrInsufficientHistory is returned when a series is shorter than the
	// largest lookback window or fewer valid indicator rows remain than a
	// condition needs.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidSeries is returned for price data with non-monotonic
	// timestamps or non-finite / negative values.
	ErrInvalidSeries = errors.New("invalid price series")
)
