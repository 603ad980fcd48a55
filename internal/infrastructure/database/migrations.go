package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations applies every *.up.sql file in dir in lexical order, each in
// its own transaction. The scripts must be idempotent.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", dir)
	}
	slices.Sort(files)

	for _, path := range files {
		script, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", filepath.Base(path), err)
		}

		err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, string(script))
			return err
		})
		if err != nil {
			return fmt.Errorf("applying migration %s: %w", filepath.Base(path), err)
		}
	}

	return nil
}
