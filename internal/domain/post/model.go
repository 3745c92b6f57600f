// internal/domain/post/model.go

package post

import (
	"sort"
	"time"
)

// Post is one social-media post annotated with a sentiment label.
// Empty strings stand for absent values.
type Post struct {
	Date           time.Time `json:"date"`
	Text           string    `json:"text"`
	CleanText      string    `json:"clean_text,omitempty"`
	UserLocation   string    `json:"user_location,omitempty"`
	LocationClean  string    `json:"location_clean,omitempty"`
	SentimentLabel string    `json:"sentiment_label"`
}

// Table is an ordered, immutable collection of posts
type Table struct {
	posts []Post
}

// NewTable creates a table holding a copy of posts
func NewTable(posts []Post) *Table {
	rows := make([]Post, len(posts))
	copy(rows, posts)
	return &Table{posts: rows}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.posts)
}

// Rows returns a copy of the rows in table order
func (t *Table) Rows() []Post {
	if t == nil {
		return nil
	}
	rows := make([]Post, len(t.posts))
	copy(rows, t.posts)
	return rows
}

// Select returns a new table with the rows matching keep, in order
func (t *Table) Select(keep func(Post) bool) *Table {
	if t == nil {
		return NewTable(nil)
	}
	selected := make([]Post, 0, len(t.posts))
	for _, p := range t.posts {
		if keep(p) {
			selected = append(selected, p)
		}
	}
	return &Table{posts: selected}
}

// Locations returns the sorted distinct non-empty clean locations
func (t *Table) Locations() []string {
	return t.distinct(func(p Post) string { return p.LocationClean })
}

// Labels returns the sorted distinct sentiment labels
func (t *Table) Labels() []string {
	return t.distinct(func(p Post) string { return p.SentimentLabel })
}

// DateBounds returns the earliest and latest post dates
func (t *Table) DateBounds() (time.Time, time.Time, bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}

	earliest, latest := t.posts[0].Date, t.posts[0].Date
	for _, p := range t.posts[1:] {
		if p.Date.Before(earliest) {
			earliest = p.Date
		}
		if p.Date.After(latest) {
			latest = p.Date
		}
	}
	return earliest, latest, true
}

func (t *Table) distinct(field func(Post) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	if t == nil {
		return values
	}
	for _, p := range t.posts {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
