package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/farawebdata/backend/migrations"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrationsTable records applied schema versions.
const MigrationsTable = "schema_migrations"

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrator applies the embedded migrations for the gateway's driver.
type Migrator struct {
	db      *sql.DB
	dialect string
	dir     string
	release func() error
	log     *slog.Logger
}

// NewMigrator prepares a Migrator for gw. PostgreSQL pools are bridged to
// database/sql because goose does not speak pgx natively.
func NewMigrator(gw Gateway, log *slog.Logger) (*Migrator, error) {
	if log == nil {
		log = slog.Default()
	}
	switch g := gw.(type) {
	case *PgGateway:
		db := stdlib.OpenDBFromPool(g.Pool())
		return &Migrator{db: db, dialect: "postgres", dir: DriverPostgres, release: db.Close, log: log}, nil
	case *SQLiteGateway:
		return &Migrator{db: g.DB(), dialect: "sqlite3", dir: DriverSQLite, release: func() error { return nil }, log: log}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDriver, gw)
	}
}

// Migrate applies every pending migration for gw.
func Migrate(ctx context.Context, gw Gateway, log *slog.Logger) error {
	m, err := NewMigrator(gw, log)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	defer m.Close()
	return m.Up(ctx)
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run(func() error { return goose.UpContext(ctx, m.db, m.dir) })
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.run(func() error { return goose.DownContext(ctx, m.db, m.dir) })
}

// Status logs the state of every migration.
func (m *Migrator) Status(ctx context.Context) error {
	return m.run(func() error { return goose.StatusContext(ctx, m.db, m.dir) })
}

// Fresh rolls back every migration and reapplies them, dropping all data.
func (m *Migrator) Fresh(ctx context.Context) error {
	return m.run(func() error {
		if err := goose.ResetContext(ctx, m.db, m.dir); err != nil {
			return err
		}
		return goose.UpContext(ctx, m.db, m.dir)
	})
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	var version int64
	err := m.run(func() error {
		v, err := goose.GetDBVersionContext(ctx, m.db)
		version = v
		return err
	})
	return version, err
}

// Close releases the database/sql bridge. The gateway itself stays open.
func (m *Migrator) Close() error {
	return m.release()
}

func (m *Migrator) run(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(MigrationsTable)
	goose.SetLogger(&gooseLogger{log: m.log})
	if err := goose.SetDialect(m.dialect); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := fn(); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// gooseLogger routes goose's Printf-style output through slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}
