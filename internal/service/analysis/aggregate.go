package analysis

import (
	"sort"
	"strings"
	"time"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/post"
)

// WordText joins the clean text of every row, skipping absent values
func WordText(table *post.Table) (string, error) {
	var parts []string
	for _, p := range table.Rows() {
		if p.CleanText != "" {
			parts = append(parts, p.CleanText)
		}
	}

	text := strings.Join(parts, " ")
	if strings.TrimSpace(text) == "" {
		return "", ErrNoData
	}
	return text, nil
}

// SentimentBreakdown counts rows per sentiment label, most frequent first
func SentimentBreakdown(table *post.Table) ([]dashboard.CategoryCount, error) {
	counts := make(map[string]int)
	for _, p := range table.Rows() {
		if p.SentimentLabel == "" {
			continue
		}
		counts[p.SentimentLabel]++
	}
	if len(counts) == 0 {
		return nil, ErrNoData
	}

	breakdown := make([]dashboard.CategoryCount, 0, len(counts))
	for label, n := range counts {
		breakdown = append(breakdown, dashboard.CategoryCount{Label: label, Count: n})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Label < breakdown[j].Label
	})

	return breakdown, nil
}

// SentimentOverTime counts rows per (date, label) and reshapes the result
// into one row per date and one column per label, zero filled
func SentimentOverTime(table *post.Table) (dashboard.TimeSeries, error) {
	if table.Len() == 0 {
		return dashboard.TimeSeries{}, ErrNoData
	}

	type key struct {
		date  time.Time
		label string
	}
	counts := make(map[key]int)
	dateSet := make(map[time.Time]struct{})
	for _, p := range table.Rows() {
		if p.SentimentLabel == "" {
			continue
		}
		counts[key{p.Date, p.SentimentLabel}]++
		dateSet[p.Date] = struct{}{}
	}
	if len(dateSet) == 0 {
		return dashboard.TimeSeries{}, ErrNoData
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	categories := table.Labels()
	series := dashboard.TimeSeries{
		Dates:      dates,
		Categories: categories,
		Counts:     make([][]int, len(dates)),
	}
	for i, d := range dates {
		row := make([]int, len(categories))
		for j, c := range categories {
			row[j] = counts[key{d, c}]
		}
		series.Counts[i] = row
	}

	return series, nil
}

// LocationSentiment groups located rows by location and label, derives the
// share of negativeLabel rows per location and ranks the topN locations by it
func LocationSentiment(table *post.Table, negativeLabel string, topN int) (dashboard.LocationAggregate, error) {
	located := table.Select(func(p post.Post) bool { return p.LocationClean != "" })
	if located.Len() == 0 {
		return dashboard.LocationAggregate{}, ErrNoData
	}

	byLocation := make(map[string]map[string]int)
	for _, p := range located.Rows() {
		counts, ok := byLocation[p.LocationClean]
		if !ok {
			counts = make(map[string]int)
			byLocation[p.LocationClean] = counts
		}
		counts[p.SentimentLabel]++
	}

	categories := located.Labels()
	agg := dashboard.LocationAggregate{
		Categories: categories,
		Stats:      make([]dashboard.LocationStat, 0, len(byLocation)),
	}
	for _, location := range located.Locations() {
		agg.Stats = append(agg.Stats, NewLocationStat(location, byLocation[location], negativeLabel))
	}

	agg.Top = RankByNegative(agg.Stats, topN)
	return agg, nil
}

// NewLocationStat builds the stat for one location from its per-label counts
func NewLocationStat(location string, counts map[string]int, negativeLabel string) dashboard.LocationStat {
	stat := dashboard.LocationStat{
		Location: location,
		Counts:   make(map[string]int, len(counts)),
	}
	for label, n := range counts {
		stat.Counts[label] = n
		stat.Total += n
	}
	stat.Negative = stat.Counts[negativeLabel]
	stat.NegativePct, stat.HasRatio = Ratio(stat.Negative, stat.Total)
	return stat
}

// Ratio returns part/total, or false when total is not positive
func Ratio(part, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	return float64(part) / float64(total), true
}

// RankByNegative orders stats by negative share, highest first, ties by
// location name, and keeps at most topN. Stats without a ratio are skipped.
func RankByNegative(stats []dashboard.LocationStat, topN int) []dashboard.LocationStat {
	ranked := make([]dashboard.LocationStat, 0, len(stats))
	for _, s := range stats {
		if s.HasRatio {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].NegativePct != ranked[j].NegativePct {
			return ranked[i].NegativePct > ranked[j].NegativePct
		}
		return ranked[i].Location < ranked[j].Location
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
