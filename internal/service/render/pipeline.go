package render

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/geo"
	"sentimentdash/internal/domain/post"
	"sentimentdash/internal/service/analysis"
	geoService "sentimentdash/internal/service/geo"
)

// Placeholder messages shown instead of a chart when there is nothing to draw
const (
	WarningWordCloud = "No tweets available for this selection to generate word cloud."
	WarningSentiment = "No sentiment data for selected filters."
	WarningTimeline  = "No time series data available."
	WarningLocation  = "Not enough location data to display top countries or map."
	WarningSample    = "No tweets found for this filter combination."
)

// Map scopes
const (
	MapScopeFiltered = "filtered"
	MapScopeAll      = "all"
)

// Config contains configuration for the render pipeline
type Config struct {
	Title         string
	Sentiments    []string
	NegativeLabel string
	TopN          int
	SampleSize    int
	MaxWords      int
	MapScope      string
}

// Sampler picks k distinct row indexes out of n
type Sampler func(n, k int) []int

// RandomSampler samples without replacement
func RandomSampler(n, k int) []int {
	return rand.Perm(n)[:k]
}

// Pipeline renders the dashboard views for one rerun. It keeps no state
// between calls.
type Pipeline struct {
	config    Config
	charts    ChartBuilder
	resolver  geo.Resolver
	stopwords *analysis.Stopwords
	sampler   Sampler
	newID     func() string
}

// NewPipeline creates a new render pipeline
func NewPipeline(
	config Config,
	charts ChartBuilder,
	resolver geo.Resolver,
	stopwords *analysis.Stopwords,
) *Pipeline {
	if resolver == nil {
		resolver = geoService.NewCountryResolver()
	}
	if stopwords == nil {
		stopwords = analysis.DefaultStopwords()
	}

	return &Pipeline{
		config:    config,
		charts:    charts,
		resolver:  resolver,
		stopwords: stopwords,
		sampler:   RandomSampler,
		newID:     func() string { return uuid.New().String() },
	}
}

// WithSampler replaces the row sampler
func (p *Pipeline) WithSampler(s Sampler) *Pipeline {
	p.sampler = s
	return p
}

// Config returns the pipeline configuration
func (p *Pipeline) Config() Config {
	return p.config
}

// Options returns the sidebar filter options for the full table
func (p *Pipeline) Options(table *post.Table) dashboard.FilterOptions {
	options := dashboard.FilterOptions{
		Sentiments: append([]string(nil), p.config.Sentiments...),
		Locations:  table.Locations(),
	}
	options.MinDate, options.MaxDate, options.HasDates = table.DateBounds()
	return options
}

// Render filters the table and renders every panel in display order
func (p *Pipeline) Render(table *post.Table, criteria post.Criteria) dashboard.Views {
	criteria = criteria.Normalize()
	filtered := analysis.Filter(table, criteria)

	views := dashboard.Views{
		RenderID: p.newID(),
		Title:    p.config.Title,
		Criteria: criteria,
		RowCount: filtered.Len(),
		Options:  p.Options(table),
	}

	views.Panels = append(views.Panels,
		p.wordCloudPanel(filtered),
		p.sentimentPanel(filtered),
		p.timelinePanel(filtered),
	)
	views.Panels = append(views.Panels, p.locationPanels(filtered, table)...)
	views.Sample, views.SampleWarning = p.sample(filtered)

	return views
}

func (p *Pipeline) wordCloudPanel(filtered *post.Table) dashboard.Panel {
	panel := dashboard.Panel{ID: dashboard.PanelWordCloud, Title: "Word Cloud"}

	text, err := analysis.WordText(filtered)
	if err != nil {
		return withWarning(panel, err, WarningWordCloud)
	}
	words := analysis.WordFrequencies(text, p.stopwords, p.config.MaxWords)
	if len(words) == 0 {
		panel.Warning = WarningWordCloud
		return panel
	}

	return withChart(panel)(p.charts.WordCloud(panel.Title, words))
}

func (p *Pipeline) sentimentPanel(filtered *post.Table) dashboard.Panel {
	panel := dashboard.Panel{ID: dashboard.PanelSentiment, Title: "Sentiment Breakdown"}

	counts, err := analysis.SentimentBreakdown(filtered)
	if err != nil {
		return withWarning(panel, err, WarningSentiment)
	}

	return withChart(panel)(p.charts.SentimentPie(panel.Title, counts))
}

func (p *Pipeline) timelinePanel(filtered *post.Table) dashboard.Panel {
	panel := dashboard.Panel{ID: dashboard.PanelTimeline, Title: "Sentiment Trend Over Time"}

	series, err := analysis.SentimentOverTime(filtered)
	if err != nil {
		return withWarning(panel, err, WarningTimeline)
	}

	return withChart(panel)(p.charts.SentimentLine(panel.Title, series))
}

func (p *Pipeline) locationPanels(filtered, full *post.Table) []dashboard.Panel {
	label := p.config.NegativeLabel
	valueLabel := fmt.Sprintf("%s Sentiment %%", label)

	top := dashboard.Panel{
		ID:    dashboard.PanelTopLocations,
		Title: fmt.Sprintf("Top %d Countries by %% %s Tweets", p.config.TopN, label),
	}
	world := dashboard.Panel{
		ID:    dashboard.PanelMap,
		Title: fmt.Sprintf("%s Sentiment %% by Country", label),
	}

	agg, err := analysis.LocationSentiment(filtered, label, p.config.TopN)
	switch {
	case err != nil:
		top = withWarning(top, err, WarningLocation)
	case len(agg.Top) == 0:
		top.Warning = WarningLocation
	default:
		top = withChart(top)(p.charts.TopLocationsBar(top.Title, valueLabel, agg.Top))
	}

	mapAgg, mapErr := agg, err
	if p.config.MapScope == MapScopeAll {
		mapAgg, mapErr = analysis.LocationSentiment(full, label, p.config.TopN)
	}
	if mapErr != nil {
		return []dashboard.Panel{top, withWarning(world, mapErr, WarningLocation)}
	}

	regions := geoService.MergeRegions(mapAgg.Stats, p.resolver)
	if len(regions) == 0 {
		world.Warning = WarningLocation
		return []dashboard.Panel{top, world}
	}

	return []dashboard.Panel{top, withChart(world)(p.charts.RegionMap(world.Title, valueLabel, regions))}
}

func (p *Pipeline) sample(filtered *post.Table) ([]dashboard.SampleRow, string) {
	n := filtered.Len()
	if n == 0 {
		return nil, WarningSample
	}

	k := p.config.SampleSize
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil, ""
	}

	rows := filtered.Rows()
	sample := make([]dashboard.SampleRow, 0, k)
	for _, i := range p.sampler(n, k) {
		if i < 0 || i >= n || len(sample) == k {
			continue
		}
		r := rows[i]
		sample = append(sample, dashboard.SampleRow{
			Date:           r.Date,
			UserLocation:   r.UserLocation,
			SentimentLabel: r.SentimentLabel,
			Text:           r.Text,
		})
	}
	return sample, ""
}

func withWarning(panel dashboard.Panel, err error, noData string) dashboard.Panel {
	if errors.Is(err, analysis.ErrNoData) {
		panel.Warning = noData
	} else {
		panel.Warning = fmt.Sprintf("Chart unavailable: %v", err)
	}
	return panel
}

func withChart(panel dashboard.Panel) func([]byte, error) dashboard.Panel {
	return func(chart []byte, err error) dashboard.Panel {
		if err != nil {
			panel.Warning = fmt.Sprintf("Chart unavailable: %v", err)
			return panel
		}
		panel.Chart = chart
		return panel
	}
}
