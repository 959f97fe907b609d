package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteGateway implements Gateway on an embedded SQLite file. It serves
// local development and tests where no PostgreSQL server is available.
type SQLiteGateway struct {
	db *sql.DB
}

// Ensure SQLiteGateway implements Gateway at compile time.
var _ Gateway = (*SQLiteGateway)(nil)

// sqlitePragmas are applied to every pooled connection through the DSN.
// WAL lets readers proceed during a write; the busy timeout makes concurrent
// writers wait for the lock instead of failing with SQLITE_BUSY.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

// OpenSQLite opens the database file at path and verifies the connection.
func OpenSQLite(path string) (*SQLiteGateway, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&" + sqlitePragmas
	} else {
		dsn += "?" + sqlitePragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &SQLiteGateway{db: db}, nil
}

// DB exposes the underlying connection for migrations.
func (g *SQLiteGateway) DB() *sql.DB {
	return g.db
}

func (g *SQLiteGateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *SQLiteGateway) Close() {
	_ = g.db.Close()
}

func (g *SQLiteGateway) Insert(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	if len(columns) != len(values) || len(columns) == 0 {
		return 0, storageErr("insert", table, ErrColumnMismatch)
	}

	idents := make([]string, len(columns))
	for i, c := range columns {
		idents[i] = quoteIdent(c)
	}
	query := `INSERT INTO ` + quoteIdent(table) + ` (` + strings.Join(idents, ", ") +
		`) VALUES (` + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + `)`

	res, err := g.db.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, storageErr("insert", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("insert", table, err)
	}
	return id, nil
}

func (g *SQLiteGateway) SelectAll(ctx context.Context, table string) ([]Row, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT * FROM `+quoteIdent(table)+` ORDER BY id`)
	if err != nil {
		return nil, storageErr("select", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, storageErr("select", table, err)
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, storageErr("select", table, err)
		}

		row := make(Row, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("select", table, err)
	}
	return result, nil
}

// quoteIdent quotes an SQLite identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
