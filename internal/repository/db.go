package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN             string // postgres URL; empty selects SQLite
	SQLitePath      string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// DB is the Ent SQL driver plus the handles behind it. Pool is set only for
// Postgres.
type DB struct {
	Driver  *entsql.Driver
	SQL     *sql.DB
	Pool    *pgxpool.Pool
	Dialect string // dialect.Postgres or dialect.SQLite
}

// Open connects to Postgres through a pgx pool when cfg.DSN is set, otherwise
// opens the SQLite file cfg.SQLitePath. The schema is created if missing.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		db  *DB
		err error
	)
	if cfg.DSN != "" {
		db, err = openPostgres(ctx, cfg, logger)
	} else {
		db, err = openSQLite(cfg.SQLitePath, logger)
	}
	if err != nil {
		logger.Error("failed to connect to database", "dialect", dialectOf(cfg), "error", err)
		return nil, err
	}
	if err := db.migrate(ctx); err != nil {
		db.Close(logger)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("successfully connected to database", "dialect", db.Dialect)
	return db, nil
}

func dialectOf(cfg Config) string {
	if cfg.DSN != "" {
		return dialect.Postgres
	}
	return dialect.SQLite
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "dialect", dialect.Postgres)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "ecuapassdocs"

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}

	// Wrap pool as *sql.DB for Ent
	sqldb := stdlib.OpenDBFromPool(pool)
	return &DB{
		Driver:  entsql.OpenDB(dialect.Postgres, sqldb),
		SQL:     sqldb,
		Pool:    pool,
		Dialect: dialect.Postgres,
	}, nil
}

func openSQLite(path string, logger *slog.Logger) (*DB, error) {
	if path == "" {
		path = ":memory:"
	}
	logger.Info("opening database", "dialect", dialect.SQLite, "path", path)
	sqldb, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	// One connection: keeps ":memory:" databases alive and serializes writers.
	sqldb.SetMaxOpenConns(1)
	return &DB{
		Driver:  entsql.OpenDB(dialect.SQLite, sqldb),
		SQL:     sqldb,
		Dialect: dialect.SQLite,
	}, nil
}

// Close closes the database connections gracefully
func (db *DB) Close(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("closing database connections")
	if err := db.Driver.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the database.
func HealthCheck(ctx context.Context, db *DB, timeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.SQL.PingContext(ctx); err != nil {
		return err
	}
	logger.Debug("database ping successful")
	return nil
}

// builder returns an Ent query builder for the connected dialect.
func (db *DB) builder() *entsql.DialectBuilder {
	return entsql.Dialect(db.Dialect)
}

// migrate creates the documents table. Timestamps are RFC 3339 text so both
// dialects store and compare them the same way.
func (db *DB) migrate(ctx context.Context) error {
	b := db.builder()
	query, args := b.CreateTable(documentsTable).
		IfNotExists().
		Columns(
			b.Column(colID).Type("TEXT").Attr("NOT NULL"),
			b.Column(colPath).Type("TEXT").Attr("NOT NULL UNIQUE"),
			b.Column(colNumber).Type("TEXT"),
			b.Column(colStatus).Type("TEXT").Attr("NOT NULL"),
			b.Column(colRecord).Type("TEXT"),
			b.Column(colError).Type("TEXT"),
			b.Column(colCreatedAt).Type("TEXT").Attr("NOT NULL"),
			b.Column(colUpdatedAt).Type("TEXT").Attr("NOT NULL"),
		).
		PrimaryKey(colID).
		Query()
	return db.Driver.Exec(ctx, query, args, nil)
}
