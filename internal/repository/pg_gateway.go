package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig tunes the PostgreSQL connection pool.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
	ConnectAttempts int
	ConnectInterval time.Duration
}

// NewPool creates a PostgreSQL pool and verifies it with a ping. Failed
// attempts are retried with a linearly growing wait.
func NewPool(ctx context.Context, connString string, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}

	attempts := max(cfg.ConnectAttempts, 1)
	var lastErr error
	for i := range attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
			case <-time.After(time.Duration(i) * cfg.ConnectInterval):
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			lastErr = err
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}
	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// PgGateway is the PostgreSQL implementation of Gateway.
type PgGateway struct {
	pool *pgxpool.Pool
}

// NewPgGateway creates a PgGateway backed by the given pool. The gateway
// takes ownership of the pool and closes it in Close.
func NewPgGateway(pool *pgxpool.Pool) *PgGateway {
	return &PgGateway{pool: pool}
}

// Ensure PgGateway implements Gateway at compile time.
var _ Gateway = (*PgGateway)(nil)

// Pool exposes the underlying pool for migrations.
func (g *PgGateway) Pool() *pgxpool.Pool {
	return g.pool
}

func (g *PgGateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

func (g *PgGateway) Close() {
	g.pool.Close()
}

// Insert inserts one row and reads the assigned id from the RETURNING clause.
func (g *PgGateway) Insert(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	if len(columns) != len(values) || len(columns) == 0 {
		return 0, storageErr("insert", table, ErrColumnMismatch)
	}

	var id int64
	if err := g.pool.QueryRow(ctx, pgInsertSQL(table, columns), values...).Scan(&id); err != nil {
		return 0, storageErr("insert", table, err)
	}
	return id, nil
}

// SelectAll returns every row of table ordered by id.
func (g *PgGateway) SelectAll(ctx context.Context, table string) ([]Row, error) {
	rows, err := g.pool.Query(ctx, `SELECT * FROM `+pgx.Identifier{table}.Sanitize()+` ORDER BY id`)
	if err != nil {
		return nil, storageErr("select", table, err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, storageErr("select", table, err)
	}

	result := make([]Row, 0, len(maps))
	for _, m := range maps {
		result = append(result, Row(m))
	}
	return result, nil
}

func pgInsertSQL(table string, columns []string) string {
	idents := make([]string, len(columns))
	params := make([]string, len(columns))
	for i, c := range columns {
		idents[i] = pgx.Identifier{c}.Sanitize()
		params[i] = "$" + strconv.Itoa(i+1)
	}
	return `INSERT INTO ` + pgx.Identifier{table}.Sanitize() +
		` (` + strings.Join(idents, ", ") + `) VALUES (` + strings.Join(params, ", ") + `) RETURNING id`
}
