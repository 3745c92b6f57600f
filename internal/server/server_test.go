package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimentdash/internal/config"
	"sentimentdash/internal/domain/post"
	"sentimentdash/internal/logger"
	"sentimentdash/internal/metrics"
	"sentimentdash/internal/server/handlers"
	"sentimentdash/internal/service/dataset"
	"sentimentdash/internal/service/render"
)

type memSource struct {
	table *post.Table
}

func (s memSource) Name() string { return "memory" }

func (s memSource) Load(ctx context.Context) (*post.Table, error) {
	return s.table, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	posts := []post.Post{
		{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), CleanText: "hello world", LocationClean: "USA", SentimentLabel: "Positive"},
	}
	loader := dataset.NewMemoLoader(memSource{table: post.NewTable(posts)}, logger.NewNop(), m)

	pipeline := render.NewPipeline(render.Config{
		Title:         "Test",
		Sentiments:    []string{"Positive", "Negative"},
		NegativeLabel: "Negative",
		TopN:          10,
		SampleSize:    5,
		MaxWords:      50,
		MapScope:      render.MapScopeFiltered,
	}, render.NewEChartsBuilder(), nil, nil)

	h := handlers.NewDashboardHandler(loader, pipeline, nil, m, logger.NewNop())
	srv := NewServer(config.ServerConfig{CorsOrigins: []string{"*"}}, h, reg, logger.NewNop())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	code, body := get(t, ts.URL+"/api/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)

	code, body = get(t, ts.URL+"/api/v1/views")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"row_count":1`)

	code, body = get(t, ts.URL+"/api/v1/options")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"locations":["USA"]`)

	code, body = get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Test</title>")

	code, body = get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "sentimentdash_render_total")
	assert.Contains(t, body, "sentimentdash_dataset_rows 1")

	code, _ = get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, code)
}
