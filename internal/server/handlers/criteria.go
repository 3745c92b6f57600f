// internal/server/handlers/criteria.go

package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sentimentdash/internal/domain/post"
)

// DateLayout is the layout of dates in query strings and messages
const DateLayout = "2006-01-02"

// ErrInvalidCriteria is returned for filter values that cannot be parsed
var ErrInvalidCriteria = errors.New("invalid criteria")

// CriteriaMessage is the filter selection sent by the UI
type CriteriaMessage struct {
	Type      string   `json:"type"`
	Sentiment string   `json:"sentiment"`
	Location  string   `json:"location"`
	Dates     []string `json:"dates"`
}

// Criteria converts the message into filter criteria
func (m CriteriaMessage) Criteria() (post.Criteria, error) {
	return buildCriteria(m.Sentiment, m.Location, m.Dates)
}

// ParseCriteria reads sentiment, location and repeated date parameters
func ParseCriteria(values url.Values) (post.Criteria, error) {
	return buildCriteria(values.Get("sentiment"), values.Get("location"), values["date"])
}

func buildCriteria(sentiment, location string, dates []string) (post.Criteria, error) {
	criteria := post.Criteria{
		Sentiment: strings.TrimSpace(sentiment),
		Location:  strings.TrimSpace(location),
	}

	for _, value := range dates {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		date, err := time.Parse(DateLayout, value)
		if err != nil {
			return post.Criteria{}, fmt.Errorf("%w: date %q", ErrInvalidCriteria, value)
		}
		criteria.Dates = append(criteria.Dates, date)
	}

	return criteria.Normalize(), nil
}
