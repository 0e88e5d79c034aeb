package model

import (
	"encoding/json"
	"time"
)

// Condition names evaluated by the scoring engine.
const (
	CondTrendUp           = "trend_up"
	CondOversold          = "oversold"
	CondMACDCrossUp       = "macd_cross_up"
	CondBreakoutUpperBand = "breakout_upper_band"
	CondStrongTrend       = "strong_trend"
	CondVolumeConfirmsUp  = "volume_confirms_up"
	CondStochCrossUpLow   = "stoch_cross_up_low"
)

// ConditionNames lists every condition in report order.
var ConditionNames = []string{
	CondTrendUp,
	CondOversold,
	CondMACDCrossUp,
	CondBreakoutUpperBand,
	CondStrongTrend,
	CondVolumeConfirmsUp,
	CondStochCrossUpLow,
}

// ConditionSet maps each condition name to its outcome.
type ConditionSet map[string]bool

// Count returns the number of true conditions.
func (c ConditionSet) Count() int {
	n := 0
	for _, v := range c {
		if v {
			n++
		}
	}
	return n
}

// Evaluation is the output of the scoring engine for one symbol.
type Evaluation struct {
	Score      int          `json:"score"`
	Conditions ConditionSet `json:"conditions"`
}

// Report error codes.
const (
	ErrCodeNotEnoughData = "not_enough_data"
	ErrCodeInvalidData   = "invalid_data"
	ErrCodeFetchFailed   = "fetch_failed"
)

// ScoreReport is the per-symbol result of a scan. Error is set instead of a
// score when the symbol could not be evaluated. Bars counts the input bars
// and Rows the fully defined indicator rows.
type ScoreReport struct {
	Symbol     string       `json:"symbol"`
	Price      float64      `json:"price"`
	Score      int          `json:"score"`
	Conditions ConditionSet `json:"conditions"`
	AsOf       time.Time    `json:"as_of"`
	Bars       int          `json:"bars"`
	Rows       int          `json:"rows"`
	Error      string       `json:"error,omitempty"`
	Detail     string       `json:"detail,omitempty"`
}

// OK reports whether the symbol was scored.
func (r *ScoreReport) OK() bool { return r.Error == "" }

// MarshalJSON encodes a failed report without score fields so an error slot
// cannot be read as a score of zero.
func (r ScoreReport) MarshalJSON() ([]byte, error) {
	if r.OK() {
		type scored ScoreReport
		return json.Marshal(scored(r))
	}
	return json.Marshal(struct {
		Symbol string `json:"symbol"`
		Bars   int    `json:"bars"`
		Error  string `json:"error"`
		Detail string `json:"detail,omitempty"`
	}{r.Symbol, r.Bars, r.Error, r.Detail})
}
