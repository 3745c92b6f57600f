// internal/domain/dashboard/model.go

package dashboard

import (
	"encoding/json"
	"time"

	"sentimentdash/internal/domain/post"
)

// CategoryCount is the number of rows carrying one sentiment label
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TimeSeries holds per-date sentiment counts. Counts[i][j] is the count for
// Dates[i] and Categories[j]; missing combinations are zero.
type TimeSeries struct {
	Dates      []time.Time `json:"dates"`
	Categories []string    `json:"categories"`
	Counts     [][]int     `json:"counts"`
}

// Series returns the counts of one category across all dates
func (ts TimeSeries) Series(category string) []int {
	col := -1
	for j, c := range ts.Categories {
		if c == category {
			col = j
			break
		}
	}

	values := make([]int, len(ts.Dates))
	if col < 0 {
		return values
	}
	for i := range ts.Dates {
		values[i] = ts.Counts[i][col]
	}
	return values
}

// LocationStat is the sentiment breakdown of one location
type LocationStat struct {
	Location    string         `json:"location"`
	Counts      map[string]int `json:"counts"`
	Total       int            `json:"total"`
	Negative    int            `json:"negative"`
	NegativePct float64        `json:"negative_pct"`
	// HasRatio is false when Total is zero and NegativePct is undefined
	HasRatio bool `json:"has_ratio"`
}

// LocationAggregate is the per-location sentiment aggregate
type LocationAggregate struct {
	Categories []string `json:"categories"`
	// Stats covers every location, sorted by name
	Stats []LocationStat `json:"stats"`
	// Top is ranked by NegativePct, highest first
	Top []LocationStat `json:"top"`
}

// FilterOptions lists the values offered by the sidebar controls
type FilterOptions struct {
	Sentiments []string  `json:"sentiments"`
	Locations  []string  `json:"locations"`
	MinDate    time.Time `json:"min_date"`
	MaxDate    time.Time `json:"max_date"`
	HasDates   bool      `json:"has_dates"`
}

// PanelID identifies one visualization
type PanelID string

const (
	PanelWordCloud    PanelID = "wordcloud"
	PanelSentiment    PanelID = "sentiment"
	PanelTimeline     PanelID = "timeline"
	PanelTopLocations PanelID = "top_locations"
	PanelMap          PanelID = "map"
)

// Panel is one rendered chart, or the warning shown in its place
type Panel struct {
	ID      PanelID         `json:"id"`
	Title   string          `json:"title"`
	Warning string          `json:"warning,omitempty"`
	Chart   json.RawMessage `json:"chart,omitempty"`
}

// HasChart reports whether the panel carries chart options
func (p Panel) HasChart() bool {
	return p.Warning == "" && len(p.Chart) > 0
}

// SampleRow is one row of the sample table
type SampleRow struct {
	Date           time.Time `json:"date"`
	UserLocation   string    `json:"user_location"`
	SentimentLabel string    `json:"sentiment_label"`
	Text           string    `json:"text"`
}

// Views is everything a single rerun renders, in display order
type Views struct {
	RenderID      string        `json:"render_id"`
	Title         string        `json:"title"`
	Criteria      post.Criteria `json:"criteria"`
	RowCount      int           `json:"row_count"`
	Options       FilterOptions `json:"options"`
	Panels        []Panel       `json:"panels"`
	Sample        []SampleRow   `json:"sample"`
	SampleWarning string        `json:"sample_warning,omitempty"`
}

// Panel returns the panel with the given id
func (v Views) Panel(id PanelID) (Panel, bool) {
	for _, p := range v.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// Renderer turns a table and filter criteria into views
type Renderer interface {
	Render(table *post.Table, criteria post.Criteria) Views
}
