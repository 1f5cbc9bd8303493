package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/lgarreta/ecuapassdocs/internal/common"
	repo "github.com/lgarreta/ecuapassdocs/internal/repository"
)

// ConnectDB opens the record store described by cfg: Postgres when a DSN is
// set, the SQLite file otherwise.
func ConnectDB(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*repo.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.DSN,
		SQLitePath:      cfg.SQLitePath,
		MaxConns:        cfg.MaxConns,
		MinConns:        cfg.MinConns,
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
		DialTimeout:     cfg.DialTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("successfully connected to database", "dialect", string(db.Dialect))
	return db, nil
}

// PingDB returns a Pinger checking db with the given timeout.
func PingDB(db *repo.DB, timeout time.Duration, logger *slog.Logger) Pinger {
	return func(ctx context.Context) error {
		return repo.HealthCheck(ctx, db, timeout, logger)
	}
}
