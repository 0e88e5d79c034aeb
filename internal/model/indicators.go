package model

import "time"

// Float is an indicator value that may be undefined, either because its
// window has not filled yet or because a ratio hit a zero denominator.
type Float struct {
	Value float64
	Valid bool
}

// Some wraps a defined value.
func Some(v float64) Float { return Float{Value: v, Valid: true} }

// Undefined is the zero Float.
var Undefined = Float{}

// IndicatorRow is a bar together with every derived field. Rows are only
// produced when all fields are defined.
type IndicatorRow struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	EMA50      float64
	EMA200     float64
	RSI14      float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64
	BBUpper    float64
	BBMiddle   float64
	BBLower    float64
	ADX14      float64
	OBV        float64
	StochK     float64
	StochD     float64
}
