package post

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleTable() *Table {
	return NewTable([]Post{
		{Date: day("2020-01-02"), SentimentLabel: "Positive", LocationClean: "USA"},
		{Date: day("2020-01-01"), SentimentLabel: "Negative", LocationClean: ""},
		{Date: day("2020-01-03"), SentimentLabel: "Negative", LocationClean: "France"},
		{Date: day("2020-01-02"), SentimentLabel: "Neutral", LocationClean: "USA"},
	})
}

func TestNewTableCopiesInput(t *testing.T) {
	posts := []Post{{Text: "a"}}
	table := NewTable(posts)
	posts[0].Text = "changed"

	assert.Equal(t, "a", table.Rows()[0].Text)

	rows := table.Rows()
	rows[0].Text = "changed again"
	assert.Equal(t, "a", table.Rows()[0].Text)
}

func TestTableHelpers(t *testing.T) {
	table := sampleTable()

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []string{"France", "USA"}, table.Locations())
	assert.Equal(t, []string{"Negative", "Neutral", "Positive"}, table.Labels())

	min, max, ok := table.DateBounds()
	require.True(t, ok)
	assert.Equal(t, day("2020-01-01"), min)
	assert.Equal(t, day("2020-01-03"), max)
}

func TestEmptyTable(t *testing.T) {
	var nilTable *Table
	assert.Equal(t, 0, nilTable.Len())
	assert.Empty(t, nilTable.Locations())

	_, _, ok := NewTable(nil).DateBounds()
	assert.False(t, ok)
}

func TestCriteriaDateRange(t *testing.T) {
	_, _, ok := Criteria{Dates: []time.Time{day("2020-01-01")}}.DateRange()
	assert.False(t, ok, "single date must not form a range")

	_, _, ok = Criteria{Dates: []time.Time{day("2020-01-01"), day("2020-01-02"), day("2020-01-03")}}.DateRange()
	assert.False(t, ok, "three dates must not form a range")

	start, end, ok := Criteria{Dates: []time.Time{day("2020-01-05"), day("2020-01-01")}}.DateRange()
	require.True(t, ok)
	assert.Equal(t, day("2020-01-01"), start)
	assert.Equal(t, day("2020-01-05"), end)
}

func TestCriteriaNormalize(t *testing.T) {
	c := Criteria{Sentiment: AllValue, Location: AllValue}.Normalize()
	assert.True(t, c.IsZero())

	c = Criteria{Sentiment: "Negative", Location: AllValue}.Normalize()
	assert.Equal(t, "Negative", c.Sentiment)
	assert.Empty(t, c.Location)
	assert.False(t, c.IsZero())
}

func TestCriteriaMatches(t *testing.T) {
	p := Post{Date: day("2020-01-02"), SentimentLabel: "Negative", LocationClean: "USA"}

	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"identity", Criteria{}, true},
		{"sentiment match", Criteria{Sentiment: "Negative"}, true},
		{"sentiment mismatch", Criteria{Sentiment: "Positive"}, false},
		{"location mismatch", Criteria{Location: "France"}, false},
		{"inclusive start", Criteria{Dates: []time.Time{day("2020-01-02"), day("2020-01-09")}}, true},
		{"inclusive end", Criteria{Dates: []time.Time{day("2019-12-01"), day("2020-01-02")}}, true},
		{"outside range", Criteria{Dates: []time.Time{day("2020-01-03"), day("2020-01-09")}}, false},
		{"single date ignored", Criteria{Dates: []time.Time{day("2021-01-01")}}, true},
		{"all predicates", Criteria{Sentiment: "Negative", Location: "USA", Dates: []time.Time{day("2020-01-01"), day("2020-01-03")}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.Matches(p))
		})
	}
}
