package strategy

import "SignalScanner/internal/model"

// Fixed thresholds.
const (
	OversoldRSI       = 30.0
	StrongTrendADX    = 25.0
	StochLowThreshold = 20.0
)

// trendUp: EMA50 above EMA200.
func trendUp(curr *model.IndicatorRow) bool {
	return curr.EMA50 > curr.EMA200
}

func oversold(curr *model.IndicatorRow) bool {
	return curr.RSI14 < OversoldRSI
}

// macdCrossUp is a strict upward zero crossing of the MACD histogram.
func macdCrossUp(prev, curr *model.IndicatorRow) bool {
	return prev.MACDHist <= 0 && curr.MACDHist > 0
}

func breakoutUpperBand(curr *model.IndicatorRow) bool {
	return curr.Close > curr.BBUpper
}

func strongTrend(curr *model.IndicatorRow) bool {
	return curr.ADX14 > StrongTrendADX
}

// volumeConfirmsUp compares the current OBV with the OBV of a reference row
// some bars back.
func volumeConfirmsUp(ref, curr *model.IndicatorRow) bool {
	return curr.OBV > ref.OBV
}

// stochCrossUpLow is a bullish %K/%D crossover on the current bar while %K
// or %D sits below StochLowThreshold.
func stochCrossUpLow(prev, curr *model.IndicatorRow) bool {
	crossed := prev.StochK <= prev.StochD && curr.StochK > curr.StochD
	low := curr.StochK < StochLowThreshold || curr.StochD < StochLowThreshold
	return crossed && low
}

// EvaluatePair evaluates every condition from two adjacent rows using the
// previous row as the OBV reference.
func EvaluatePair(prev, curr *model.IndicatorRow) model.ConditionSet {
	return evaluate(prev, curr, prev)
}

func evaluate(prev, curr, obvRef *model.IndicatorRow) model.ConditionSet {
	return model.ConditionSet{
		model.CondTrendUp:           trendUp(curr),
		model.CondOversold:          oversold(curr),
		model.CondMACDCrossUp:       macdCrossUp(prev, curr),
		model.CondBreakoutUpperBand: breakoutUpperBand(curr),
		model.CondStrongTrend:       strongTrend(curr),
		model.CondVolumeConfirmsUp:  volumeConfirmsUp(obvRef, curr),
		model.CondStochCrossUpLow:   stochCrossUpLow(prev, curr),
	}
}
