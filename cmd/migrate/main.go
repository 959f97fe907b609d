package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/farawebdata/backend/internal/config"
	"github.com/farawebdata/backend/internal/logging"
	"github.com/farawebdata/backend/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the form API schema migrations",
		Long: `Apply the embedded schema migrations to the database selected by
DATABASE_DRIVER and DATABASE_URL. Without a subcommand, pending
migrations are applied.`,
		SilenceUsage: true,
		RunE: withMigrator(func(ctx context.Context, m *repository.Migrator) error {
			return m.Up(ctx)
		}),
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *repository.Migrator) error {
				return m.Up(ctx)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *repository.Migrator) error {
				return m.Down(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the state of every migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *repository.Migrator) error {
				return m.Status(ctx)
			}),
		},
		&cobra.Command{
			Use:   "fresh",
			Short: "Roll back every migration and reapply them (drops all data)",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *repository.Migrator) error {
				return m.Fresh(ctx)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *repository.Migrator) error {
				v, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Println(v)
				return nil
			}),
		},
	)
	return root
}

// withMigrator opens the configured store, runs fn with a Migrator and
// closes everything afterwards.
func withMigrator(fn func(ctx context.Context, m *repository.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logging.Setup(cfg.LogLevel)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		gw, err := repository.Open(ctx, cfg.Database.Options())
		if err != nil {
			return err
		}
		defer gw.Close()

		m, err := repository.NewMigrator(gw, slog.Default())
		if err != nil {
			return err
		}
		defer m.Close()

		if err := fn(ctx, m); err != nil {
			slog.Error("migration failed", "driver", cfg.Database.Driver, "error", err)
			return err
		}
		return nil
	}
}
