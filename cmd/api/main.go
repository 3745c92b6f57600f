// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"sentimentdash/internal/adapter/events"
	"sentimentdash/internal/adapter/storage"
	"sentimentdash/internal/config"
	"sentimentdash/internal/domain/post"
	"sentimentdash/internal/logger"
	"sentimentdash/internal/metrics"
	"sentimentdash/internal/server"
	"sentimentdash/internal/server/handlers"
	"sentimentdash/internal/service/analysis"
	"sentimentdash/internal/service/dataset"
	geoService "sentimentdash/internal/service/geo"
	"sentimentdash/internal/service/render"
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Initialize the post source
	source, closeSource, err := initSource(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize data source", logger.Error(err))
	}
	defer closeSource()

	loader := dataset.NewMemoLoader(source, appLogger, appMetrics)

	// Warm the cache. A failure is shown on the page and retried on the next rerun.
	if _, err := loader.Table(ctx); err != nil {
		appLogger.Warn("Initial data load failed", logger.Error(err))
	}

	// Initialize event publisher
	publisher, err := initPublisher(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", logger.Error(err))
	}
	defer publisher.Close()

	// Initialize render pipeline
	stopwords := analysis.DefaultStopwords()
	if cfg.Dashboard.StopwordsFile != "" {
		if err := stopwords.LoadFromFile(cfg.Dashboard.StopwordsFile); err != nil {
			appLogger.Fatal("Failed to load stopwords", logger.Error(err))
		}
	}
	for _, word := range cfg.Dashboard.ExtraStopwords {
		stopwords.Add(word)
	}

	resolver := geoService.NewCountryResolver()
	for alias, region := range cfg.Dashboard.LocationAliases {
		resolver.AddAlias(alias, region)
	}

	pipeline := render.NewPipeline(
		render.Config{
			Title:         cfg.Dashboard.Title,
			Sentiments:    cfg.Dashboard.Sentiments,
			NegativeLabel: cfg.Dashboard.NegativeLabel,
			TopN:          cfg.Dashboard.TopN,
			SampleSize:    cfg.Dashboard.SampleSize,
			MaxWords:      cfg.Dashboard.MaxWords,
			MapScope:      cfg.Dashboard.MapScope,
		},
		render.NewEChartsBuilder(),
		resolver,
		stopwords,
	)

	dashboardHandler := handlers.NewDashboardHandler(loader, pipeline, publisher, appMetrics, appLogger)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, dashboardHandler, prometheus.DefaultGatherer, appLogger)

	// Start HTTP server
	go func() {
		appLogger.Info("Starting HTTP server",
			logger.String("host", cfg.Server.Host),
			logger.Int("port", cfg.Server.Port),
			logger.String("source", source.Name()),
			logger.Bool("events_enabled", cfg.NATS.URL != ""),
			logger.Any("sentiments", cfg.Dashboard.Sentiments),
			logger.Int("stopwords", stopwords.Len()),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server error", logger.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	appLogger.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", logger.Error(err))
	}

	appLogger.Info("Shutdown complete")
}

// initSource returns the configured post source and a cleanup function
func initSource(ctx context.Context, cfg config.Config) (post.Source, func(), error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewPostStore(db, cfg.Database.PostsTable)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil
	default:
		return dataset.NewCSVSource(cfg.Data.CSVPath), func() {}, nil
	}
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// initPublisher connects to NATS, or returns a no-op publisher when no URL is set
func initPublisher(cfg config.NATSConfig, appLogger logger.Logger) (events.Publisher, error) {
	if cfg.URL == "" {
		return events.NopPublisher{}, nil
	}

	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			appLogger.Warn("NATS disconnected", logger.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			appLogger.Info("NATS reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			appLogger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return events.NewNATSPublisher(nc, cfg.EventsTopic), nil
}
