package service

import (
	"context"

	"github.com/farawebdata/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockGateway: in-memory stub for testing
// ---------------------------------------------------------------------------

type insertCall struct {
	table   string
	columns []string
	values  []any
}

type mockGateway struct {
	insertFunc    func(ctx context.Context, table string, columns []string, values []any) (int64, error)
	selectAllFunc func(ctx context.Context, table string) ([]repository.Row, error)

	inserts []insertCall
}

func (m *mockGateway) Insert(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	m.inserts = append(m.inserts, insertCall{table: table, columns: columns, values: values})
	if m.insertFunc != nil {
		return m.insertFunc(ctx, table, columns, values)
	}
	return int64(len(m.inserts)), nil
}

func (m *mockGateway) SelectAll(ctx context.Context, table string) ([]repository.Row, error) {
	if m.selectAllFunc != nil {
		return m.selectAllFunc(ctx, table)
	}
	return []repository.Row{}, nil
}

func (m *mockGateway) Ping(ctx context.Context) error { return nil }

func (m *mockGateway) Close() {}

func storageFailure(op, table string) error {
	return &repository.StorageError{Op: op, Table: table, Err: context.DeadlineExceeded}
}
