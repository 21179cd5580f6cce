package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leetboard/internal/api"
	"leetboard/internal/app/service"
	"leetboard/internal/app/worker"
	"leetboard/internal/domain/repository"
	"leetboard/internal/platform/config"
	"leetboard/internal/platform/httpx"
	"leetboard/internal/platform/lock"
	"leetboard/internal/platform/logging"
	"leetboard/internal/platform/statsapi"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "leetboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded",
		zap.String("port", cfg.APIPort),
		zap.String("snapshot", cfg.SnapshotPath),
		zap.String("schedule", cfg.RefreshSchedule))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Refresh Lock
	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisConfigured() {
		rdb, err := lock.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = lock.NewRedis(rdb, cfg.RefreshLockKey, cfg.LockTTL())
		logger.Info("redis connected, refresh lock is shared", zap.String("key", cfg.RefreshLockKey))
	}

	// 4. Initialize Repositories
	rosterPaths := repository.RosterPaths{
		Rolls:    cfg.RollsPath,
		Names:    cfg.NamesPath,
		URLs:     cfg.URLsPath,
		Sections: cfg.SectionsPath,
	}
	rosterRepo := repository.NewFileRosterRepository(rosterPaths)
	snapshotRepo := repository.NewFileSnapshotRepository(cfg.SnapshotPath)

	// 5. Initialize Services
	statsClient := statsapi.NewClient(httpx.NewClient(cfg.FetchTimeout()), cfg.StatsAPIBaseURL, cfg.FetchTimeout(), logger)
	aggregatorService := service.NewAggregatorService(rosterRepo, snapshotRepo, statsClient, logger)
	queryService := service.NewQueryService(snapshotRepo)

	// 6. Initialize Workers
	refreshWorker, err := worker.NewRefreshWorker(aggregatorService, locker, cfg.RefreshSchedule, logger)
	if err != nil {
		return err
	}
	var rosterWatcher *worker.RosterWatcher
	if cfg.RosterWatch {
		rosterWatcher, err = worker.NewRosterWatcher(rosterPaths.Files(), worker.DefaultRosterDebounce, func(ctx context.Context) {
			refreshWorker.Trigger(ctx, "roster change")
		}, logger)
		if err != nil {
			return err
		}
	}

	// 7. Initialize Router & HTTP Server
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      api.NewRouter(queryService, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Run until signalled
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not listen on %s: %w", server.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		return refreshWorker.Start(gctx)
	})
	if rosterWatcher != nil {
		g.Go(func() error {
			return rosterWatcher.Start(gctx)
		})
	}

	// 9. Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("stopped with error", zap.Error(err))
		return err
	}
	logger.Info("server and workers stopped gracefully")
	return nil
}
