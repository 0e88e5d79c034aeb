package calculator

import (
	"fmt"

	"SignalScanner/internal/model"
)

// Indicator windows.
const (
	EMAFastSpan  = 50
	EMASlowSpan  = 200
	RSIPeriod    = 14
	MACDFast     = 12
	MACDSlow     = 26
	MACDSignal   = 9
	BollingerLen = 20
	BollingerStd = 2.0
	ADXPeriod    = 14
	StochKPeriod = 14
	StochDPeriod = 3
)

// MinHistory is the largest lookback window; shorter series are rejected.
const MinHistory = EMASlowSpan

// Series holds every indicator column over the full input history. Columns
// are index-aligned with Bars.
type Series struct {
	Bars       []model.OHLCV
	EMA50      []model.Float
	EMA200     []model.Float
	RSI14      []model.Float
	MACD       []model.Float
	MACDSignal []model.Float
	MACDHist   []model.Float
	BBUpper    []model.Float
	BBMiddle   []model.Float
	BBLower    []model.Float
	ADX14      []model.Float
	OBV        []model.Float
	StochK     []model.Float
	StochD     []model.Float
}

// ComputeSeries validates bars and computes all indicator columns over the
// whole history. The input is not modified.
func ComputeSeries(bars []model.OHLCV) (*Series, error) {
	if len(bars) < MinHistory {
		return nil, fmt.Errorf("%w: %d bars, need %d", model.ErrInsufficientHistory, len(bars), MinHistory)
	}
	if err := model.ValidateBars(bars); err != nil {
		return nil, err
	}

	s := &Series{Bars: bars}
	closes := extractCloses(bars)

	var err error
	if s.EMA50, err = CalculateEMA(closes, EMAFastSpan); err != nil {
		return nil, fmt.Errorf("ema%d: %w", EMAFastSpan, err)
	}
	if s.EMA200, err = CalculateEMA(closes, EMASlowSpan); err != nil {
		return nil, fmt.Errorf("ema%d: %w", EMASlowSpan, err)
	}
	if s.RSI14, err = CalculateRSI(bars, RSIPeriod); err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	macd, err := CalculateMACD(bars, MACDFast, MACDSlow, MACDSignal)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	s.MACD, s.MACDSignal, s.MACDHist = macd.MACD, macd.Signal, macd.Histogram

	bb, err := CalculateBollinger(bars, BollingerLen, BollingerStd)
	if err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}
	s.BBUpper, s.BBMiddle, s.BBLower = bb.Upper, bb.Middle, bb.Lower

	if s.ADX14, err = CalculateADX(bars, ADXPeriod); err != nil {
		return nil, fmt.Errorf("adx: %w", err)
	}
	s.OBV = CalculateOBV(bars)

	stoch, err := CalculateStochastic(bars, StochKPeriod, StochDPeriod)
	if err != nil {
		return nil, fmt.Errorf("stochastic: %w", err)
	}
	s.StochK, s.StochD = stoch.K, stoch.D

	return s, nil
}

// Row returns the indicator row at index i. ok is false when any field of
// that row is undefined.
func (s *Series) Row(i int) (row model.IndicatorRow, ok bool) {
	fields := []model.Float{
		s.EMA50[i], s.EMA200[i], s.RSI14[i],
		s.MACD[i], s.MACDSignal[i], s.MACDHist[i],
		s.BBUpper[i], s.BBMiddle[i], s.BBLower[i],
		s.ADX14[i], s.OBV[i], s.StochK[i], s.StochD[i],
	}
	for _, f := range fields {
		if !f.Valid {
			return model.IndicatorRow{}, false
		}
	}
	b := s.Bars[i]
	return model.IndicatorRow{
		Time:       b.Time,
		Open:       b.Open,
		High:       b.High,
		Low:        b.Low,
		Close:      b.Close,
		Volume:     b.Volume,
		EMA50:      s.EMA50[i].Value,
		EMA200:     s.EMA200[i].Value,
		RSI14:      s.RSI14[i].Value,
		MACD:       s.MACD[i].Value,
		MACDSignal: s.MACDSignal[i].Value,
		MACDHist:   s.MACDHist[i].Value,
		BBUpper:    s.BBUpper[i].Value,
		BBMiddle:   s.BBMiddle[i].Value,
		BBLower:    s.BBLower[i].Value,
		ADX14:      s.ADX14[i].Value,
		OBV:        s.OBV[i].Value,
		StochK:     s.StochK[i].Value,
		StochD:     s.StochD[i].Value,
	}, true
}

// Rows returns every fully defined row in chronological order.
func (s *Series) Rows() []model.IndicatorRow {
	rows := make([]model.IndicatorRow, 0, len(s.Bars))
	for i := range s.Bars {
		if row, ok := s.Row(i); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// Compute runs the full indicator pipeline and drops rows with any undefined
// field. It returns model.ErrInsufficientHistory for series shorter than
// MinHistory. A valid series may still yield no rows, e.g. a constant price.
func Compute(bars []model.OHLCV) ([]model.IndicatorRow, error) {
	s, err := ComputeSeries(bars)
	if err != nil {
		return nil, err
	}
	return s.Rows(), nil
}
