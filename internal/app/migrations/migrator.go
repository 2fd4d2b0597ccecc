package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// lockKey serializes concurrent migrators through pg_advisory_xact_lock.
const lockKey int64 = 0x636f757273 // "cours"

const createTrackingTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migration is one numbered SQL file.
type Migration struct {
	Version string
	Path    string
}

// MigrationVersion extracts the version prefix, e.g. "001_init.sql" => "001"
func MigrationVersion(path string) string {
	return strings.SplitN(filepath.Base(path), "_", 2)[0]
}

// Discover lists the .sql files in dir ordered by name. Two files sharing a
// version prefix are rejected.
func Discover(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migration directory: %w", err)
	}

	var out []Migration
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		v := MigrationVersion(e.Name())
		if prev, dup := seen[v]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %s", prev, e.Name(), v)
		}
		seen[v] = e.Name()
		out = append(out, Migration{Version: v, Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Migrator applies pending migrations, each in its own transaction.
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

func NewMigrator(db *pgxpool.Pool, lgr zerolog.Logger) *Migrator {
	return &Migrator{db: db, logger: lgr}
}

// MigrateFromDirectory applies every migration in dir not yet recorded in
// schema_migrations.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dir string) error {
	all, err := Discover(dir)
	if err != nil {
		return err
	}
	if _, err := m.db.Exec(ctx, createTrackingTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	pending := 0
	for _, mig := range all {
		if applied[mig.Version] {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return err
		}
		pending++
	}
	m.logger.Info().Int("applied", pending).Int("total", len(all)).Msg("Migrations up to date")
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan applied migrations: %w", err)
	}

	set := make(map[string]bool, len(versions))
	for _, v := range versions {
		set[v] = true
	}
	return set, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	body, err := os.ReadFile(mig.Path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", mig.Path, err)
	}

	return pgx.BeginFunc(ctx, m.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		// Another instance may have applied it while we waited on the lock.
		var done bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, mig.Version).Scan(&done); err != nil {
			return fmt.Errorf("check migration %s: %w", mig.Version, err)
		}
		if done {
			return nil
		}

		if _, err := tx.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(mig.Path), err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
			return fmt.Errorf("record migration %s: %w", mig.Version, err)
		}
		m.logger.Info().Str("file", filepath.Base(mig.Path)).Msg("Migration applied")
		return nil
	})
}
