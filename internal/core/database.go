// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"reflect"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/articlehub/internal/config"
)

const tracerName = "github.com/carterperez-dev/articlehub/internal/core"

// DBTX is the query surface repositories depend on. *Database satisfies it,
// as do *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(
		ctx context.Context,
		dest any,
		query string,
		args ...any,
	) error
}

// Result is what Execute hands back: every returned row as a column map and
// the number of rows.
type Result struct {
	Rows     []map[string]any
	RowCount int64
}

// Database owns the connection pool. Every statement that passes through it
// is logged, traced, and has its failure wrapped in a *StorageError.
type Database struct {
	DB     *sqlx.DB
	logger *slog.Logger
	tracer trace.Tracer
}

func NewDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (*Database, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(jitteredDuration(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on connection failure
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return WrapDB(db, logger), nil
}

// WrapDB adopts an already opened handle.
func WrapDB(db *sqlx.DB, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.Default()
	}
	return &Database{
		DB:     db,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

func (d *Database) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

func (d *Database) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := d.DB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

// Execute runs a parameterized statement and collects whatever rows it
// returns.
func (d *Database) Execute(
	ctx context.Context,
	statement string,
	args ...any,
) (*Result, error) {
	result := &Result{}

	err := d.observe(ctx, "execute", statement, func(ctx context.Context) (int64, error) {
		rows, err := d.DB.QueryxContext(ctx, statement, args...)
		if err != nil {
			return 0, err
		}
		defer rows.Close() //nolint:errcheck // rows.Err is checked below

		for rows.Next() {
			row := make(map[string]any)
			if err := rows.MapScan(row); err != nil {
				return 0, err
			}
			result.Rows = append(result.Rows, row)
		}
		if err := rows.Err(); err != nil {
			return 0, err
		}

		result.RowCount = int64(len(result.Rows))
		return result.RowCount, nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (d *Database) ExecContext(
	ctx context.Context,
	query string,
	args ...any,
) (sql.Result, error) {
	var res sql.Result

	err := d.observe(ctx, "exec", query, func(ctx context.Context) (int64, error) {
		var err error
		res, err = d.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return -1, nil //nolint:nilerr // driver cannot report a count
		}
		return affected, nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (d *Database) GetContext(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	return d.observe(ctx, "get", query, func(ctx context.Context) (int64, error) {
		if err := d.DB.GetContext(ctx, dest, query, args...); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

func (d *Database) SelectContext(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	return d.observe(ctx, "select", query, func(ctx context.Context) (int64, error) {
		if err := d.DB.SelectContext(ctx, dest, query, args...); err != nil {
			return 0, err
		}
		return int64(sliceLen(dest)), nil
	})
}

func (d *Database) observe(
	ctx context.Context,
	op, statement string,
	fn func(ctx context.Context) (int64, error),
) error {
	ctx, span := d.tracer.Start(ctx, "db.query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.String("db.statement", statement),
		),
	)
	defer span.End()

	start := time.Now()
	rows, err := fn(ctx)
	duration := time.Since(start)

	if errors.Is(err, sql.ErrNoRows) {
		d.logger.InfoContext(ctx, "executed query",
			"statement", statement,
			"duration", duration,
			"rows", 0,
		)
		return err
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.ErrorContext(ctx, "database query error",
			"statement", statement,
			"duration", duration,
			"error", err,
		)
		return NewStorageError(op, statement, err)
	}

	span.SetAttributes(attribute.Int64("db.rows", rows))
	d.logger.InfoContext(ctx, "executed query",
		"statement", statement,
		"duration", duration,
		"rows", rows,
	)

	return nil
}

var _ DBTX = (*Database)(nil)

func jitteredDuration(base time.Duration) time.Duration {
	if base < 7 {
		return base
	}
	//nolint:gosec // G404: non-security-sensitive jitter for connection pool
	jitter := time.Duration(rand.Int64N(int64(base / 7)))
	return base + jitter
}

func sliceLen(dest any) int {
	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}
