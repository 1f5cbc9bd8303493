package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgarreta/ecuapassdocs/constants"
	"github.com/lgarreta/ecuapassdocs/internal/app"
	"github.com/lgarreta/ecuapassdocs/internal/async"
	"github.com/lgarreta/ecuapassdocs/internal/common"
	"github.com/lgarreta/ecuapassdocs/internal/ingest"
	"github.com/lgarreta/ecuapassdocs/internal/repository"
	"github.com/lgarreta/ecuapassdocs/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Server.WatchDir == "" {
		logger.Error("WATCH_DIR env var is required")
		os.Exit(2)
	}

	a, err := app.Open(ctx, cfg, app.Options{}, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := server.New(logger)
	go srv.Monitor(ctx, 15*time.Second, server.PingDB(a.DB, 5*time.Second, logger))

	queue := async.NewProcessorQueue(a.Processor, logger,
		async.WithWorkers(cfg.Batch.Workers),
		async.WithQueueSize(512),
		async.WithProcessTimeout(cfg.Batch.DocTimeout),
	)

	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Server.WatchDir},
		InitialScan: true,
		Debounce:    500 * time.Millisecond,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("failed to watch directory", "dir", cfg.Server.WatchDir, "error", err)
		os.Exit(1)
	}
	go dispatch(ctx, events, watchErrs, queue, a.Documents, logger)

	logger.Info("ecuapassd listening", "addr", cfg.Server.GRPCAddr, "watch_dir", cfg.Server.WatchDir)
	if err := srv.ListenAndServe(ctx, cfg.Server.GRPCAddr); err != nil {
		logger.Error("gRPC server stopped", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Batch.DocTimeout)
	defer cancel()
	queue.Shutdown(shutdownCtx)
}

// dispatch enqueues every cache file the watcher reports. Files already
// processed, and not written since, are skipped.
func dispatch(ctx context.Context, events <-chan string, errs <-chan error, q async.Queue, docs repository.DocumentRepository, logger *slog.Logger) {
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return
			}
			if processed(ctx, docs, path) {
				logger.Debug("skipping processed document", "path", path)
				continue
			}
			err := q.Enqueue(ctx, async.Job{Path: path})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("failed to enqueue document", "path", path, "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watcher reported an error", "error", err)
		}
	}
}

func processed(ctx context.Context, docs repository.DocumentRepository, path string) bool {
	d, err := docs.GetByPath(ctx, path)
	if err != nil || d.Status != constants.DocumentStatusProcessed {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && !st.ModTime().After(d.UpdatedAt)
}
