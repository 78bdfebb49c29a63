package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricRowAcceptsRMomAlias(t *testing.T) {
	var rows []MetricRow
	err := json.Unmarshal([]byte(`[
		{"Index Name":"NBANK","Ret":12.5,"V1":0.4,"Risk":55.1,"AbsMom":null,"RMom":1.2},
		{"Index Name":"NAUTO","Ret":null,"V1":null,"Risk":40,"AbsMom":2.5,"Momentum":-0.3,"RMom":9}
	]`), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "NBANK", rows[0].IndexName)
	require.NotNil(t, rows[0].Momentum)
	assert.Equal(t, 1.2, *rows[0].Momentum)
	assert.Nil(t, rows[0].AbsMom)

	require.NotNil(t, rows[1].Momentum)
	assert.Equal(t, -0.3, *rows[1].Momentum)
	assert.Nil(t, rows[1].Ret)
	assert.Equal(t, 40.0, rows[1].Risk)
}

func TestMetricRowRequiresName(t *testing.T) {
	var r MetricRow
	assert.Error(t, json.Unmarshal([]byte(`{"Ret":1}`), &r))
}

func TestTimelineDecodesNumberOrString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`3`, "3"},
		{`3.0`, "3"},
		{`"5"`, "5"},
		{`3.5`, "3.5"},
		{`"4.5"`, "4.5"},
	}
	for _, tt := range tests {
		var tl Timeline
		require.NoError(t, json.Unmarshal([]byte(tt.in), &tl), tt.in)
		assert.Equal(t, tt.want, tl.String(), tt.in)
	}

	var tl Timeline
	assert.Error(t, json.Unmarshal([]byte(`"three"`), &tl))
}

func TestParseTimelineRejectsNonPositive(t *testing.T) {
	_, err := ParseTimeline("0")
	assert.Error(t, err)
	_, err = ParseTimeline("-1")
	assert.Error(t, err)
}

func TestParseReturnMode(t *testing.T) {
	m, err := ParseReturnMode("", ModeTrailing)
	require.NoError(t, err)
	assert.Equal(t, ModeTrailing, m)

	m, err = ParseReturnMode("Rolling", ModeTrailing)
	require.NoError(t, err)
	assert.Equal(t, ModeRolling, m)
	assert.Equal(t, "Rolling", m.Label())

	_, err = ParseReturnMode("forward", ModeTrailing)
	assert.Error(t, err)
}

func TestHeatmapPayloadMonthKeepsMissing(t *testing.T) {
	var p HeatmapPayload
	require.NoError(t, json.Unmarshal([]byte(`{
		"indexName":"N50","mode":"trailing","timeline":"3",
		"heatmapData":{"2023":{"1":5.2,"2":null}}
	}`), &p))

	jan := p.Month("2023", 1)
	require.NotNil(t, jan)
	assert.Equal(t, 5.2, *jan)
	assert.Nil(t, p.Month("2023", 2))
	assert.Nil(t, p.Month("2023", 3))
	assert.Nil(t, p.Month("1999", 1))
	assert.Nil(t, p.CAGR)
}

func TestSortStateToggle(t *testing.T) {
	s := DefaultSortState()
	assert.Equal(t, SortState{Column: ColumnName, Ascending: true}, s)

	s = s.Toggle(ColumnName)
	assert.False(t, s.Ascending)

	s = s.Toggle(ColumnRisk)
	assert.Equal(t, SortState{Column: ColumnRisk, Ascending: false}, s)

	s = s.Toggle(ColumnRisk)
	assert.True(t, s.Ascending)

	s = s.Toggle(ColumnName)
	assert.Equal(t, SortState{Column: ColumnName, Ascending: true}, s)
}

func TestViewStateJSON(t *testing.T) {
	b, err := json.Marshal(StateCategoryDisplayed)
	require.NoError(t, err)
	assert.Equal(t, `"category"`, string(b))

	var s ViewState
	require.NoError(t, json.Unmarshal([]byte(`"error"`), &s))
	assert.Equal(t, StateError, s)
	assert.Error(t, json.Unmarshal([]byte(`"paused"`), &s))
}
