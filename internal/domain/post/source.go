// internal/domain/post/source.go

package post

import (
	"context"
)

// Source produces the post table
type Source interface {
	// Name identifies the source in logs
	Name() string

	// Load reads every post. Implementations must not retain the returned table.
	Load(ctx context.Context) (*Table, error)
}

// Loader hands out the process-wide post table
type Loader interface {
	// Table returns the loaded table, loading it on first use
	Table(ctx context.Context) (*Table, error)
}
