package repository

import (
	"context"
	"fmt"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects and configures the store behind a Gateway.
type Options struct {
	Driver string
	URL    string
	Pool   PoolConfig
}

// Open connects to the configured store. The returned Gateway owns the
// connection; release it with Close at shutdown.
func Open(ctx context.Context, opts Options) (Gateway, error) {
	switch opts.Driver {
	case DriverPostgres:
		pool, err := NewPool(ctx, opts.URL, opts.Pool)
		if err != nil {
			return nil, err
		}
		return NewPgGateway(pool), nil
	case DriverSQLite:
		return OpenSQLite(opts.URL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, opts.Driver)
	}
}
