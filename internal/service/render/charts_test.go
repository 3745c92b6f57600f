package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/geo"
	"sentimentdash/internal/service/analysis"
)

func decode(t *testing.T, raw json.RawMessage) map[string]interface{} {
	t.Helper()
	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &obj))
	return obj
}

func TestEChartsBuilderPie(t *testing.T) {
	raw, err := NewEChartsBuilder().SentimentPie("Sentiment Breakdown", []dashboard.CategoryCount{
		{Label: "Negative", Count: 2},
		{Label: "Positive", Count: 1},
	})
	require.NoError(t, err)

	decode(t, raw)
	assert.Contains(t, string(raw), "Sentiment Breakdown")
	assert.Contains(t, string(raw), `"pie"`)
	assert.Contains(t, string(raw), "Negative")
}

func TestEChartsBuilderLine(t *testing.T) {
	raw, err := NewEChartsBuilder().SentimentLine("Trend", dashboard.TimeSeries{
		Dates:      []time.Time{day("2020-01-01"), day("2020-01-02")},
		Categories: []string{"Negative", "Positive"},
		Counts:     [][]int{{0, 1}, {2, 1}},
	})
	require.NoError(t, err)

	decode(t, raw)
	assert.Contains(t, string(raw), "2020-01-02")
	assert.Contains(t, string(raw), `"line"`)
	assert.Contains(t, string(raw), "Positive")
}

func TestEChartsBuilderBarAndMap(t *testing.T) {
	b := NewEChartsBuilder()

	raw, err := b.TopLocationsBar("Top", "Negative Sentiment %", []dashboard.LocationStat{
		{Location: "France", NegativePct: 1, HasRatio: true},
		{Location: "USA", NegativePct: 0.5, HasRatio: true},
	})
	require.NoError(t, err)
	decode(t, raw)
	assert.Contains(t, string(raw), `"bar"`)
	assert.Contains(t, string(raw), "France")
	assert.Contains(t, string(raw), "visualMap")

	raw, err = b.RegionMap("Map", "Negative Sentiment %", []geo.Region{
		{Name: "France", Negative: 1, Total: 1, NegativePct: 1},
	})
	require.NoError(t, err)
	decode(t, raw)
	assert.Contains(t, string(raw), `"map"`)
	assert.Contains(t, string(raw), "world")
}

func TestEChartsBuilderWordCloud(t *testing.T) {
	raw, err := NewEChartsBuilder().WordCloud("Word Cloud", []analysis.WordCount{{Word: "lockdown", Count: 3}})
	require.NoError(t, err)
	decode(t, raw)
	assert.Contains(t, string(raw), "lockdown")
	assert.Contains(t, string(raw), "wordCloud")
}

func TestRoundRatio(t *testing.T) {
	assert.Equal(t, 0.3333, roundRatio(1.0/3.0))
	assert.Equal(t, 1.0, roundRatio(1))
	assert.Equal(t, 0.0, roundRatio(0))
}
