package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/frahmantamala/smart-recruiter/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const DriverName = "pgx"

// ErrNoRows is returned by Get when the query matched nothing.
var ErrNoRows = errors.New("database: no rows")

// Querier is the parameterised query surface used by raw-SQL components.
// Queries are written with `?` placeholders and rebound for the driver.
type Querier interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Run(ctx context.Context, query string, args ...interface{}) (int64, error)
	All(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type DB struct {
	conn *sqlx.DB
}

func New(conn *sqlx.DB) *DB {
	return &DB{conn: conn}
}

func (d *DB) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := d.conn.GetContext(ctx, dest, d.conn.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

func (d *DB) Run(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := d.conn.ExecContext(ctx, d.conn.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) All(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return d.conn.SelectContext(ctx, dest, d.conn.Rebind(query), args...)
}

// Ping is used by the readiness probe.
func (d *DB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

func (d *DB) SQL() *sql.DB {
	return d.conn.DB
}

// Open connects with the pgx driver and retries the first ping with
// exponential backoff so the server can start alongside the database container.
func Open(cfg internal.DatabaseConfig, logger *slog.Logger) (*sqlx.DB, error) {
	conn, err := sqlx.Open(DriverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	retries := cfg.ConnectRetries
	if retries == 0 {
		retries = 1
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		pingErr := conn.Ping()
		if pingErr != nil {
			logger.Warn("database ping failed", "attempt", attempt, "error", pingErr)
		}
		return pingErr
	}, backoff.WithMaxRetries(policy, retries))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// OpenGorm builds the ORM handle on top of an already opened pool.
func OpenGorm(sqlDB *sql.DB, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
}
