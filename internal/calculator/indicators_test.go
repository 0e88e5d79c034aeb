package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScanner/internal/model"
)

func TestCalculateEMA_SeededWithFirstValue(t *testing.T) {
	out, err := CalculateEMA(floats([]float64{1, 2, 3}), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.5, 2.25}, values(out))

	_, err = CalculateEMA(floats([]float64{1}), 0)
	assert.Error(t, err)
}

func TestCalculateEMA_SkipsLeadingUndefined(t *testing.T) {
	in := []model.Float{model.Undefined, model.Some(4), model.Some(8)}
	out, err := CalculateEMA(in, 3)
	require.NoError(t, err)
	assert.False(t, out[0].Valid)
	assert.Equal(t, model.Some(4), out[1])
	assert.Equal(t, model.Some(6), out[2])
}

func TestCalculateSMA(t *testing.T) {
	out, err := CalculateSMA(floats([]float64{1, 2, 3, 4}), 2)
	require.NoError(t, err)
	assert.False(t, out[0].Valid)
	assert.Equal(t, []float64{0, 1.5, 2.5, 3.5}, values(out))

	in := []model.Float{model.Some(1), model.Undefined, model.Some(3), model.Some(5)}
	out, err = CalculateSMA(in, 2)
	require.NoError(t, err)
	assert.False(t, out[1].Valid)
	assert.False(t, out[2].Valid, "window containing an undefined value")
	assert.Equal(t, model.Some(4), out[3])
}

func TestCalculateRSI_RollingMeans(t *testing.T) {
	bars := barsFromCloses([]float64{10, 11, 10, 12}, 1)
	rsi, err := CalculateRSI(bars, 2)
	require.NoError(t, err)

	assert.False(t, rsi[0].Valid)
	assert.False(t, rsi[1].Valid, "no losses in window")
	assert.InDelta(t, 50.0, rsi[2].Value, 1e-9)
	assert.InDelta(t, 100.0-100.0/3.0, rsi[3].Value, 1e-9)
}

func TestCalculateRSI_UndefinedWithoutLosses(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(10 + i)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes, 1), 14)
	require.NoError(t, err)
	for i, v := range rsi {
		assert.False(t, v.Valid, "index %d", i)
	}
}

func TestCalculateRSI_Bounded(t *testing.T) {
	rsi, err := CalculateRSI(zigzagBars(300), 14)
	require.NoError(t, err)
	defined := 0
	for _, v := range rsi {
		if !v.Valid {
			continue
		}
		defined++
		assert.GreaterOrEqual(t, v.Value, 0.0)
		assert.LessOrEqual(t, v.Value, 100.0)
	}
	assert.Equal(t, 300-13, defined)
}

func TestCalculateBollinger_PopulationStd(t *testing.T) {
	bb, err := CalculateBollinger(barsFromCloses([]float64{1, 2, 3}, 0), 3, 2)
	require.NoError(t, err)

	// population variance of {1,2,3} is 2/3
	width := 2 * 0.816496580927726
	assert.InDelta(t, 2.0, bb.Middle[2].Value, 1e-12)
	assert.InDelta(t, 2.0+width, bb.Upper[2].Value, 1e-9)
	assert.InDelta(t, 2.0-width, bb.Lower[2].Value, 1e-9)
	assert.False(t, bb.Upper[1].Valid)
}

func TestCalculateOBV(t *testing.T) {
	bars := barsFromCloses([]float64{10, 11, 11, 9}, 1)
	for i, v := range []float64{100, 200, 300, 400} {
		bars[i].Volume = v
	}
	assert.Equal(t, []float64{0, 200, 200, -200}, values(CalculateOBV(bars)))
}

func TestCalculateStochastic(t *testing.T) {
	bars := barsFromCloses([]float64{10, 12, 11, 13}, 1)
	st, err := CalculateStochastic(bars, 3, 2)
	require.NoError(t, err)

	// window 0..2: high 13, low 9
	assert.InDelta(t, 100*(11.0-9.0)/(13.0-9.0), st.K[2].Value, 1e-9)
	// window 1..3: high 14, low 10
	assert.InDelta(t, 100*(13.0-10.0)/(14.0-10.0), st.K[3].Value, 1e-9)
	assert.InDelta(t, (st.K[2].Value+st.K[3].Value)/2, st.D[3].Value, 1e-9)
	assert.False(t, st.D[2].Valid)
}

func TestCalculateStochastic_ZeroRange(t *testing.T) {
	st, err := CalculateStochastic(flatBars(20, 50), 14, 3)
	require.NoError(t, err)
	for i := range st.K {
		assert.False(t, st.K[i].Valid)
		assert.False(t, st.D[i].Valid)
	}
}

func TestCalculateADX_SteadyUptrend(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = float64(10 + i)
	}
	adx, err := CalculateADX(barsFromCloses(closes, 0.5), 14)
	require.NoError(t, err)

	// TR/DM windows fill at 13, DX needs another 14 values.
	assert.False(t, adx[25].Valid)
	require.True(t, adx[26].Valid)
	assert.InDelta(t, 100.0, adx[39].Value, 1e-9)
}

func TestCalculateADX_NoRange(t *testing.T) {
	adx, err := CalculateADX(flatBars(60, 20), 14)
	require.NoError(t, err)
	for _, v := range adx {
		assert.False(t, v.Valid)
	}
}

func TestCalculateMACD_Histogram(t *testing.T) {
	res, err := CalculateMACD(zigzagBars(120), 12, 26, 9)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.MACD[0].Value)
	for i := range res.MACD {
		require.True(t, res.Histogram[i].Valid)
		assert.InDelta(t, res.MACD[i].Value-res.Signal[i].Value, res.Histogram[i].Value, 1e-12)
	}
}
