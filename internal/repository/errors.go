package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnMismatch is wrapped in a StorageError when an insert names a
	// different number of columns than values.
	ErrColumnMismatch = errors.New("column and value counts differ")

	// ErrUnsupportedDriver is returned for an unknown DATABASE_DRIVER.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
)

// StorageError reports that the store could not complete an operation. The
// cause is kept for logging only; callers answer clients generically.
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is or wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageErr(op, table string, err error) error {
	return &StorageError{Op: op, Table: table, Err: err}
}
