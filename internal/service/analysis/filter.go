// internal/service/analysis/filter.go

package analysis

import (
	"errors"

	"sentimentdash/internal/domain/post"
)

// ErrNoData signals that an aggregate has nothing to show
var ErrNoData = errors.New("no data")

// Filter returns the rows of table matching every active predicate of criteria.
// The input table is left untouched.
func Filter(table *post.Table, criteria post.Criteria) *post.Table {
	criteria = criteria.Normalize()
	if criteria.IsZero() {
		return post.NewTable(table.Rows())
	}
	return table.Select(criteria.Matches)
}
