package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Migration is one numbered schema change loaded from NNN_name.up.sql
// and its matching .down.sql.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Status describes one migration relative to the database.
type Status struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt time.Time
}

type Migrator struct {
	db           *sql.DB
	logger       *slog.Logger
	migrationsFS fs.FS
}

func NewMigrator(db *sql.DB, logger *slog.Logger, migrationsFS fs.FS) *Migrator {
	return &Migrator{
		db:           db,
		logger:       logger.With("component", "migrator"),
		migrationsFS: migrationsFS,
	}
}

// Open connects through lib/pq and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		checksum VARCHAR(64) NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// LoadMigrations reads every NNN_name.up.sql in the filesystem, sorted by
// version. A missing .down.sql is an error.
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	var migrations []Migration
	seen := make(map[int]string)

	err := fs.WalkDir(m.migrationsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".up.sql") {
			return nil
		}

		filename := path.Base(p)
		prefix, rest, ok := strings.Cut(strings.TrimSuffix(filename, ".up.sql"), "_")
		if !ok {
			m.logger.Warn("skipping migration with invalid filename", "filename", filename)
			return nil
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			m.logger.Warn("skipping migration with invalid version", "filename", filename, "error", err)
			return nil
		}
		if other, dup := seen[version]; dup {
			return fmt.Errorf("duplicate migration version %d: %s and %s", version, other, filename)
		}
		seen[version] = filename

		up, err := fs.ReadFile(m.migrationsFS, p)
		if err != nil {
			return fmt.Errorf("failed to read up migration %s: %w", p, err)
		}
		downPath := strings.TrimSuffix(p, ".up.sql") + ".down.sql"
		down, err := fs.ReadFile(m.migrationsFS, downPath)
		if err != nil {
			return fmt.Errorf("failed to read down migration %s: %w", downPath, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    rest,
			UpSQL:   string(up),
			DownSQL: string(down),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func (m *Migrator) appliedMigrations(ctx context.Context) (map[int]time.Time, []int, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	var order []int
	for rows.Next() {
		var version int
		var at time.Time
		if err := rows.Scan(&version, &at); err != nil {
			return nil, nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[version] = at
		order = append(order, version)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating migration rows: %w", err)
	}
	return applied, order, nil
}

// Up applies every pending migration in version order and returns how
// many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return 0, err
	}

	all, err := m.LoadMigrations()
	if err != nil {
		return 0, err
	}
	applied, _, err := m.appliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range pending(all, applied) {
		if err := m.apply(ctx, mig); err != nil {
			return count, fmt.Errorf("failed to apply migration %d: %w", mig.Version, err)
		}
		m.logger.InfoContext(ctx, "applied migration", "version", mig.Version, "name", mig.Name)
		count++
	}
	return count, nil
}

// Down rolls back the last steps applied migrations, newest first.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if steps <= 0 {
		steps = 1
	}
	if err := m.createMigrationsTable(ctx); err != nil {
		return 0, err
	}

	all, err := m.LoadMigrations()
	if err != nil {
		return 0, err
	}
	byVersion := make(map[int]Migration, len(all))
	for _, mig := range all {
		byVersion[mig.Version] = mig
	}

	_, order, err := m.appliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(order) - 1; i >= 0 && count < steps; i-- {
		mig, ok := byVersion[order[i]]
		if !ok {
			return count, fmt.Errorf("migration %d not found in filesystem", order[i])
		}
		if err := m.rollback(ctx, mig); err != nil {
			return count, fmt.Errorf("failed to roll back migration %d: %w", mig.Version, err)
		}
		m.logger.InfoContext(ctx, "rolled back migration", "version", mig.Version, "name", mig.Name)
		count++
	}
	return count, nil
}

// Status lists every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return nil, err
	}

	all, err := m.LoadMigrations()
	if err != nil {
		return nil, err
	}
	applied, _, err := m.appliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(all))
	for _, mig := range all {
		at, ok := applied[mig.Version]
		statuses = append(statuses, Status{Version: mig.Version, Name: mig.Name, Applied: ok, AppliedAt: at})
	}
	return statuses, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	return m.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, mig.UpSQL); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
			mig.Version, mig.Name, checksum(mig.UpSQL),
		); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
}

func (m *Migrator) rollback(ctx context.Context, mig Migration) error {
	return m.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, mig.DownSQL); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
}

func (m *Migrator) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			m.logger.ErrorContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func pending(all []Migration, applied map[int]time.Time) []Migration {
	var out []Migration
	for _, mig := range all {
		if _, ok := applied[mig.Version]; !ok {
			out = append(out, mig)
		}
	}
	return out
}

func checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
