// internal/adapter/storage/post_store.go

package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"sentimentdash/internal/domain/post"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// rowQuerier is the part of pgxpool.Pool used by the store
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PostStore reads annotated posts from Postgres
type PostStore struct {
	db    rowQuerier
	table string
}

// NewPostStore creates a new post store reading from table
func NewPostStore(db *pgxpool.Pool, table string) (*PostStore, error) {
	return newPostStore(db, table)
}

func newPostStore(db rowQuerier, table string) (*PostStore, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid posts table name %q", table)
	}
	return &PostStore{
		db:    db,
		table: table,
	}, nil
}

// Name returns the source name
func (s *PostStore) Name() string {
	return "postgres:" + s.table
}

// Query returns the select statement used to load posts
func (s *PostStore) Query() string {
	return fmt.Sprintf(`
		SELECT
			date, text, clean_text, user_location, location_clean, sentiment_label
		FROM %s
		ORDER BY date ASC
	`, s.table)
}

// Load reads every post in the table
func (s *PostStore) Load(ctx context.Context) (*post.Table, error) {
	rows, err := s.db.Query(ctx, s.Query())
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []post.Post
	for rows.Next() {
		var date time.Time
		var text, cleanText, userLocation, locationClean, label *string

		if err := rows.Scan(&date, &text, &cleanText, &userLocation, &locationClean, &label); err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}

		posts = append(posts, post.Post{
			Date:           time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			Text:           deref(text),
			CleanText:      deref(cleanText),
			UserLocation:   deref(userLocation),
			LocationClean:  deref(locationClean),
			SentimentLabel: deref(label),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return post.NewTable(posts), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
