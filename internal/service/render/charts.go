// internal/service/render/charts.go

package render

import (
	"encoding/json"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/geo"
	"sentimentdash/internal/service/analysis"
)

// ChartBuilder turns aggregates into chart options for the browser
type ChartBuilder interface {
	WordCloud(title string, words []analysis.WordCount) (json.RawMessage, error)
	SentimentPie(title string, counts []dashboard.CategoryCount) (json.RawMessage, error)
	SentimentLine(title string, series dashboard.TimeSeries) (json.RawMessage, error)
	TopLocationsBar(title, valueLabel string, top []dashboard.LocationStat) (json.RawMessage, error)
	RegionMap(title, valueLabel string, regions []geo.Region) (json.RawMessage, error)
}

// Reds is the sequential palette used for negative share
var Reds = []string{"#fff5f0", "#fcbba1", "#fb6a4a", "#cb181d", "#67000d"}

// Set3 is the qualitative palette used for sentiment categories
var Set3 = []string{"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5"}

// echartsChart is the part of a go-echarts chart needed to export its options
type echartsChart interface {
	Validate()
	JSON() map[string]interface{}
}

// EChartsBuilder builds ECharts options with go-echarts
type EChartsBuilder struct{}

// NewEChartsBuilder creates a chart builder
func NewEChartsBuilder() *EChartsBuilder {
	return &EChartsBuilder{}
}

// WordCloud builds a word cloud from word frequencies
func (b *EChartsBuilder) WordCloud(title string, words []analysis.WordCount) (json.RawMessage, error) {
	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	data := make([]opts.WordCloudData, 0, len(words))
	for _, w := range words {
		data = append(data, opts.WordCloudData{Name: w.Word, Value: w.Count})
	}
	wc.AddSeries("words", data, charts.WithWorldCloudChartOpts(opts.WordCloudChart{
		Shape:     "rect",
		SizeRange: []float32{12, 72},
	}))

	return exportOptions(wc)
}

// SentimentPie builds the sentiment breakdown pie chart
func (b *EChartsBuilder) SentimentPie(title string, counts []dashboard.CategoryCount) (json.RawMessage, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	data := make([]opts.PieData, 0, len(counts))
	for i, c := range counts {
		data = append(data, opts.PieData{
			Name:      c.Label,
			Value:     c.Count,
			ItemStyle: &opts.ItemStyle{Color: Set3[i%len(Set3)]},
		})
	}
	pie.AddSeries("Sentiment", data)

	return exportOptions(pie)
}

// SentimentLine builds one line per sentiment category over time
func (b *EChartsBuilder) SentimentLine(title string, series dashboard.TimeSeries) (json.RawMessage, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	dates := make([]string, len(series.Dates))
	for i, d := range series.Dates {
		dates[i] = d.Format("2006-01-02")
	}
	line.SetXAxis(dates)

	for _, category := range series.Categories {
		values := series.Series(category)
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(category, data)
	}

	return exportOptions(line)
}

// TopLocationsBar builds the horizontal bar chart of the ranked locations,
// highest share on top
func (b *EChartsBuilder) TopLocationsBar(title, valueLabel string, top []dashboard.LocationStat) (json.RawMessage, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Text:    []string{valueLabel},
			Min:     0,
			Max:     1,
			InRange: &opts.VisualMapInRange{Color: Reds},
		}),
	)

	names := make([]string, 0, len(top))
	data := make([]opts.BarData, 0, len(top))
	for i := len(top) - 1; i >= 0; i-- {
		names = append(names, top[i].Location)
		data = append(data, opts.BarData{Name: top[i].Location, Value: roundRatio(top[i].NegativePct)})
	}
	bar.SetXAxis(names).AddSeries(valueLabel, data)
	bar.XYReversal()

	return exportOptions(bar)
}

// RegionMap builds the world choropleth of negative share
func (b *EChartsBuilder) RegionMap(title, valueLabel string, regions []geo.Region) (json.RawMessage, error) {
	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Text:    []string{valueLabel},
			Min:     0,
			Max:     1,
			InRange: &opts.VisualMapInRange{Color: Reds},
		}),
	)

	data := make([]opts.MapData, 0, len(regions))
	for _, r := range regions {
		data = append(data, opts.MapData{Name: r.Name, Value: roundRatio(r.NegativePct)})
	}
	m.AddSeries(valueLabel, data)

	return exportOptions(m)
}

func exportOptions(c echartsChart) (json.RawMessage, error) {
	c.Validate()
	raw, err := json.Marshal(c.JSON())
	if err != nil {
		return nil, fmt.Errorf("error marshaling chart options: %w", err)
	}
	return raw, nil
}

func roundRatio(v float64) float64 {
	return float64(int64(v*10000+0.5)) / 10000
}
