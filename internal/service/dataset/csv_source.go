// internal/service/dataset/csv_source.go

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"sentimentdash/internal/domain/post"
)

// Column names expected in the input file
const (
	ColumnDate           = "date"
	ColumnText           = "text"
	ColumnCleanText      = "clean_text"
	ColumnUserLocation   = "user_location"
	ColumnLocationClean  = "location_clean"
	ColumnSentimentLabel = "sentiment_label"
)

// RequiredColumns lists every column the loader needs
var RequiredColumns = []string{
	ColumnDate,
	ColumnText,
	ColumnCleanText,
	ColumnUserLocation,
	ColumnLocationClean,
	ColumnSentimentLabel,
}

// Common errors
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidDate   = errors.New("invalid date")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006 15:04",
}

// CSVSource reads posts from a delimited text file
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSV source for the given path
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Name returns the source name
func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// Load reads the whole file into a post table
func (s *CSVSource) Load(ctx context.Context) (*post.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	table, err := ReadPosts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return table, nil
}

// ReadPosts parses CSV content with a header row into a post table
func ReadPosts(ctx context.Context, r io.Reader) (*post.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var posts []post.Post
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}

		p, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		posts = append(posts, p)
	}

	return post.NewTable(posts), nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}

	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func parseRecord(record []string, index map[string]int) (post.Post, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := ParseDate(field(ColumnDate))
	if err != nil {
		return post.Post{}, err
	}

	return post.Post{
		Date:           date,
		Text:           field(ColumnText),
		CleanText:      field(ColumnCleanText),
		UserLocation:   field(ColumnUserLocation),
		LocationClean:  field(ColumnLocationClean),
		SentimentLabel: field(ColumnSentimentLabel),
	}, nil
}

// ParseDate parses a date or timestamp and truncates it to the calendar date in UTC
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
