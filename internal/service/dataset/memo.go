package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sentimentdash/internal/domain/post"
	"sentimentdash/internal/logger"
	"sentimentdash/internal/metrics"
)

// MemoLoader loads the post table once and reuses it for the process
// lifetime. Failed loads are not remembered; the next caller retries.
type MemoLoader struct {
	source  post.Source
	log     logger.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	table *post.Table
}

// NewMemoLoader creates a memoizing loader around source. m may be nil.
func NewMemoLoader(source post.Source, log logger.Logger, m *metrics.Metrics) *MemoLoader {
	if log == nil {
		log = logger.NewNop()
	}
	return &MemoLoader{
		source:  source,
		log:     log,
		metrics: m,
	}
}

// Table returns the cached table, loading it on first successful call
func (l *MemoLoader) Table(ctx context.Context) (*post.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.table != nil {
		return l.table, nil
	}

	start := time.Now()
	table, err := l.source.Load(ctx)
	elapsed := time.Since(start)

	if err != nil {
		if l.metrics != nil {
			l.metrics.DatasetLoadFailures.Inc()
		}
		l.log.Error("Failed to load posts",
			logger.String("source", l.source.Name()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("load posts from %s: %w", l.source.Name(), err)
	}

	if l.metrics != nil {
		l.metrics.DatasetLoadSeconds.Observe(elapsed.Seconds())
		l.metrics.DatasetRows.Set(float64(table.Len()))
	}
	l.log.Info("Loaded posts",
		logger.String("source", l.source.Name()),
		logger.Int("rows", table.Len()),
		logger.Duration("duration", elapsed),
	)

	l.table = table
	return table, nil
}
