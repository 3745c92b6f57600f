package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.Data.Source)
	assert.Equal(t, "../data/sample_with_sentiment.csv", cfg.Data.CSVPath)
	assert.Equal(t, 10, cfg.Dashboard.TopN)
	assert.Equal(t, 5, cfg.Dashboard.SampleSize)
	assert.Equal(t, "Negative", cfg.Dashboard.NegativeLabel)
	assert.Equal(t, "filtered", cfg.Dashboard.MapScope)
	assert.Equal(t, []string{"Positive", "Neutral", "Negative"}, cfg.Dashboard.Sentiments)
	assert.Empty(t, cfg.NATS.URL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("DB_POSTS_TABLE", "public.tweets")
	t.Setenv("DASHBOARD_SENTIMENTS", "pos, neg ,")
	t.Setenv("DASHBOARD_TOP_N", "not-a-number")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
	assert.Equal(t, "public.tweets", cfg.Database.PostsTable)
	assert.Equal(t, []string{"pos", "neg"}, cfg.Dashboard.Sentiments)
	assert.Equal(t, 10, cfg.Dashboard.TopN)
	assert.True(t, cfg.Log.Development)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown source", "DATA_SOURCE", "sqlite"},
		{"zero top n", "DASHBOARD_TOP_N", "0"},
		{"negative sample", "DASHBOARD_SAMPLE_SIZE", "-1"},
		{"bad map scope", "DASHBOARD_MAP_SCOPE", "continent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDashboardFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := `title: Vaccine Tweets
top_n: 5
map_scope: ALL
extra_stopwords:
  - rt
location_aliases:
  the states: United States
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DASHBOARD_CONFIG_FILE", path)
	t.Setenv("DASHBOARD_SAMPLE_SIZE", "7")
	t.Setenv("DASHBOARD_EXTRA_STOPWORDS", "amp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Vaccine Tweets", cfg.Dashboard.Title)
	assert.Equal(t, 5, cfg.Dashboard.TopN)
	assert.Equal(t, 7, cfg.Dashboard.SampleSize)
	assert.Equal(t, "all", cfg.Dashboard.MapScope)
	assert.Equal(t, []string{"amp", "rt"}, cfg.Dashboard.ExtraStopwords)
	assert.Equal(t, map[string]string{"the states": "United States"}, cfg.Dashboard.LocationAliases)
}

func TestLoadDashboardFileErrors(t *testing.T) {
	t.Setenv("DASHBOARD_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_n: [1"), 0o600))
	t.Setenv("DASHBOARD_CONFIG_FILE", path)
	_, err = Load()
	assert.Error(t, err)
}
