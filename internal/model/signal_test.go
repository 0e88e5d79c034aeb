package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreReportJSON_Failed(t *testing.T) {
	r := ScoreReport{Symbol: "XYZ", Bars: 120, Error: ErrCodeNotEnoughData, Detail: "120 bars"}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"XYZ","bars":120,"error":"not_enough_data","detail":"120 bars"}`, string(data))

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "score")
	assert.NotContains(t, fields, "as_of")
}

func TestScoreReportJSON_ScoredZero(t *testing.T) {
	r := &ScoreReport{
		Symbol:     "AAPL",
		Price:      190.5,
		Conditions: ConditionSet{CondTrendUp: false},
		AsOf:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Bars:       300,
		Rows:       274,
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"AAPL","price":190.5,"score":0,"conditions":{"trend_up":false},
		"as_of":"2024-03-01T00:00:00Z","bars":300,"rows":274}`, string(data))
}
