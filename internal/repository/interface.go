package repository

import "context"

// DB checks that the store connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// Row is one stored record keyed by column name.
type Row map[string]any

// Gateway executes parameterized statements against the relational store.
// Every failure is returned as a *StorageError; nothing is retried.
type Gateway interface {
	DB

	// Insert adds one row to table and returns the identifier assigned by
	// the store. columns and values must have the same length.
	Insert(ctx context.Context, table string, columns []string, values []any) (int64, error)

	// SelectAll returns every row of table ordered by id.
	SelectAll(ctx context.Context, table string) ([]Row, error)

	Close()
}
