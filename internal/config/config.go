// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Data source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Data        DataConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Dashboard   DashboardConfig
	Log         LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DataConfig selects where posts are loaded from
type DataConfig struct {
	Source  string
	CSVPath string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
	PostsTable   string
}

// NATSConfig holds NATS configuration. An empty URL disables event publishing.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
	EventsTopic    string
}

// DashboardConfig holds dashboard rendering configuration
type DashboardConfig struct {
	Title           string            `yaml:"title"`
	Sentiments      []string          `yaml:"sentiments"`
	NegativeLabel   string            `yaml:"negative_label"`
	TopN            int               `yaml:"top_n"`
	SampleSize      int               `yaml:"sample_size"`
	MaxWords        int               `yaml:"max_words"`
	StopwordsFile   string            `yaml:"stopwords_file"`
	ExtraStopwords  []string          `yaml:"extra_stopwords"`
	MapScope        string            `yaml:"map_scope"`
	LocationAliases map[string]string `yaml:"location_aliases"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Development bool
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Data: DataConfig{
			Source:  strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
			CSVPath: getEnv("DATA_CSV_PATH", "../data/sample_with_sentiment.csv"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "sentiment"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			PostsTable:   getEnv("DB_POSTS_TABLE", "posts"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			EventsTopic:    getEnv("NATS_EVENTS_TOPIC", "dashboard"),
		},
		Dashboard: DashboardConfig{
			Title:          getEnv("DASHBOARD_TITLE", "Tweet Sentiment Dashboard"),
			Sentiments:     getEnvAsSlice("DASHBOARD_SENTIMENTS", []string{"Positive", "Neutral", "Negative"}),
			NegativeLabel:  getEnv("DASHBOARD_NEGATIVE_LABEL", "Negative"),
			TopN:           getEnvAsInt("DASHBOARD_TOP_N", 10),
			SampleSize:     getEnvAsInt("DASHBOARD_SAMPLE_SIZE", 5),
			MaxWords:       getEnvAsInt("DASHBOARD_MAX_WORDS", 200),
			StopwordsFile:  getEnv("DASHBOARD_STOPWORDS_FILE", ""),
			ExtraStopwords: getEnvAsSlice("DASHBOARD_EXTRA_STOPWORDS", nil),
			MapScope:       strings.ToLower(getEnv("DASHBOARD_MAP_SCOPE", "filtered")),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	if path := getEnv("DASHBOARD_CONFIG_FILE", ""); path != "" {
		if err := loadDashboardFile(path, &config.Dashboard); err != nil {
			return config, err
		}
	}

	return config, validate(config)
}

// loadDashboardFile overlays the non-zero values of a YAML file on dashboard
func loadDashboardFile(path string, dashboard *DashboardConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dashboard config: %w", err)
	}

	var overlay DashboardConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse dashboard config: %w", err)
	}

	if overlay.Title != "" {
		dashboard.Title = overlay.Title
	}
	if len(overlay.Sentiments) > 0 {
		dashboard.Sentiments = overlay.Sentiments
	}
	if overlay.NegativeLabel != "" {
		dashboard.NegativeLabel = overlay.NegativeLabel
	}
	if overlay.TopN != 0 {
		dashboard.TopN = overlay.TopN
	}
	if overlay.SampleSize != 0 {
		dashboard.SampleSize = overlay.SampleSize
	}
	if overlay.MaxWords != 0 {
		dashboard.MaxWords = overlay.MaxWords
	}
	if overlay.StopwordsFile != "" {
		dashboard.StopwordsFile = overlay.StopwordsFile
	}
	if len(overlay.ExtraStopwords) > 0 {
		dashboard.ExtraStopwords = append(dashboard.ExtraStopwords, overlay.ExtraStopwords...)
	}
	if overlay.MapScope != "" {
		dashboard.MapScope = strings.ToLower(overlay.MapScope)
	}
	if len(overlay.LocationAliases) > 0 {
		dashboard.LocationAliases = overlay.LocationAliases
	}

	return nil
}

// validate checks if config is valid
func validate(config Config) error {
	switch config.Data.Source {
	case SourceCSV:
		if config.Data.CSVPath == "" {
			return fmt.Errorf("csv path must be set when data source is %q", SourceCSV)
		}
	case SourcePostgres:
		if config.Database.PostsTable == "" {
			return fmt.Errorf("posts table must be set when data source is %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown data source %q", config.Data.Source)
	}

	if config.Dashboard.TopN <= 0 {
		return fmt.Errorf("dashboard top n must be positive, got %d", config.Dashboard.TopN)
	}
	if config.Dashboard.SampleSize <= 0 {
		return fmt.Errorf("dashboard sample size must be positive, got %d", config.Dashboard.SampleSize)
	}
	if config.Dashboard.MaxWords <= 0 {
		return fmt.Errorf("dashboard max words must be positive, got %d", config.Dashboard.MaxWords)
	}
	if config.Dashboard.NegativeLabel == "" {
		return fmt.Errorf("dashboard negative label must be set")
	}
	if config.Dashboard.MapScope != "filtered" && config.Dashboard.MapScope != "all" {
		return fmt.Errorf("unknown dashboard map scope %q", config.Dashboard.MapScope)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
