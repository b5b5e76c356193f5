package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexanderramin/tally/internal/cli"
	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/feed"
	"github.com/alexanderramin/tally/internal/repository"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	prefRepo := repository.NewSQLitePreferenceRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	logLevel := slog.LevelWarn
	if cfg.LogUseCases {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	observers := []service.UseCaseObserver{service.NewMetricsUseCaseObserver()}
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	app := &cli.App{
		Tracking: service.NewTrackingService(sessionRepo, prefRepo, uow, observers...),
		Report:   service.NewReportService(sessionRepo, cfg.PageSize, observers...),
		Calendar: service.NewCalendarService(sessionRepo, cfg.PageSize, observers...),
		Active:   service.NewActiveService(sessionRepo, observers...),
		Today:    service.NewTodayService(sessionRepo, cfg.PageSize, observers...),
		Config:   cfg,
		Logger:   logger,
	}

	// Live feed: Redis pub/sub when configured, otherwise polling the store.
	var publisher feed.Publisher = feed.NopPublisher{}
	switch cfg.Feed {
	case config.FeedRedis:
		client, err := feed.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer client.Close()
		rf := feed.NewRedisFeed(client, cfg.RedisChannel, sessionRepo, logger)
		app.Feed = rf
		publisher = rf
	default:
		app.Feed = feed.NewPollFeed(sessionRepo, cfg.PollInterval)
	}
	app.OnChange = cli.NewChangeHook(publisher, logger)

	// Detect interactive terminal for the start form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	if cfg.MetricsAddr != "" {
		metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
		go func() {
			logger.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := metricsSrv.Shutdown(ctx); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
