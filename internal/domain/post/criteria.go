package post

import "time"

// AllValue is the selector value the UI uses for "no filter"
const AllValue = "All"

// Criteria holds the optional filter predicates. Zero values match all rows.
type Criteria struct {
	Sentiment string      `json:"sentiment,omitempty"`
	Location  string      `json:"location,omitempty"`
	Dates     []time.Time `json:"dates,omitempty"`
}

// IsZero reports whether no predicate is active
func (c Criteria) IsZero() bool {
	_, _, hasRange := c.DateRange()
	return c.Sentiment == "" && c.Location == "" && !hasRange
}

// DateRange returns the inclusive date bounds. The range is only active
// when exactly two dates were supplied; reversed bounds are swapped.
func (c Criteria) DateRange() (time.Time, time.Time, bool) {
	if len(c.Dates) != 2 {
		return time.Time{}, time.Time{}, false
	}
	start, end := c.Dates[0], c.Dates[1]
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// Normalize maps the UI's "All" selector value to an inactive predicate
func (c Criteria) Normalize() Criteria {
	if c.Sentiment == AllValue {
		c.Sentiment = ""
	}
	if c.Location == AllValue {
		c.Location = ""
	}
	return c
}

// Matches reports whether p satisfies every active predicate
func (c Criteria) Matches(p Post) bool {
	if c.Sentiment != "" && p.SentimentLabel != c.Sentiment {
		return false
	}
	if c.Location != "" && p.LocationClean != c.Location {
		return false
	}
	if start, end, ok := c.DateRange(); ok {
		if p.Date.Before(start) || p.Date.After(end) {
			return false
		}
	}
	return true
}
