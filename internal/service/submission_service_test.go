package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionService(gw *mockGateway) SubmissionService {
	return NewSubmissionService(gw, validation.New(validation.DefaultVocabulary()))
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestSubmissionService_Submit_Success(t *testing.T) {
	gw := &mockGateway{
		insertFunc: func(ctx context.Context, table string, columns []string, values []any) (int64, error) {
			return 42, nil
		},
	}
	svc := newSubmissionService(gw)

	sub, err := svc.Submit(context.Background(), validation.SubmissionForm{
		Name:    "  Ali ",
		Mobile:  "09123456789",
		Message: "<b>hello</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), sub.ID)

	require.Len(t, gw.inserts, 1)
	call := gw.inserts[0]
	assert.Equal(t, model.SubmissionsTable, call.table)
	assert.Equal(t, []string{"name", "mobile", "message"}, call.columns)
	assert.Equal(t, []any{"Ali", "09123456789", "&lt;b&gt;hello&lt;&#x2F;b&gt;"}, call.values)
}

func TestSubmissionService_Submit_EscapingMayLengthenMobile(t *testing.T) {
	gw := &mockGateway{}
	svc := newSubmissionService(gw)

	sub, err := svc.Submit(context.Background(), validation.SubmissionForm{
		Name:    "Ali",
		Mobile:  strings.Repeat("/", 12),
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("&#x2F;", 12), sub.Mobile)
	require.Len(t, gw.inserts, 1)
	assert.Equal(t, sub.Mobile, gw.inserts[0].values[1])
}

func TestSubmissionService_Submit_ValidationErrorSkipsInsert(t *testing.T) {
	gw := &mockGateway{}
	svc := newSubmissionService(gw)

	_, err := svc.Submit(context.Background(), validation.SubmissionForm{Name: "", Mobile: "09123456789", Message: "hello"})
	require.Error(t, err)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("name"))
	assert.Empty(t, gw.inserts, "no row may be inserted on validation failure")
}

func TestSubmissionService_Submit_StorageError(t *testing.T) {
	gw := &mockGateway{
		insertFunc: func(ctx context.Context, table string, columns []string, values []any) (int64, error) {
			return 0, storageFailure("insert", table)
		},
	}
	svc := newSubmissionService(gw)

	_, err := svc.Submit(context.Background(), validation.SubmissionForm{Name: "Ali", Mobile: "09123456789", Message: "hello"})
	require.Error(t, err)
	assert.True(t, repository.IsStorageError(err))
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestSubmissionService_List(t *testing.T) {
	var gotTable string
	gw := &mockGateway{
		selectAllFunc: func(ctx context.Context, table string) ([]repository.Row, error) {
			gotTable = table
			return []repository.Row{{"id": int64(1), "name": "Ali"}}, nil
		},
	}
	svc := newSubmissionService(gw)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionsTable, gotTable)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ali", rows[0]["name"])
}

func TestSubmissionService_List_StorageError(t *testing.T) {
	gw := &mockGateway{
		selectAllFunc: func(ctx context.Context, table string) ([]repository.Row, error) {
			return nil, storageFailure("select", table)
		},
	}
	svc := newSubmissionService(gw)

	_, err := svc.List(context.Background())
	assert.True(t, repository.IsStorageError(err))
}
