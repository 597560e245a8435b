package db

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/pulse/internal/core/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var migrationFile = regexp.MustCompile(`^(\d+)_([A-Za-z0-9_]+)\.(up|down)\.sql$`)

// Migration is one embedded schema change with the SQL to apply and revert it.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// MigrationStatus reports whether a known migration is applied to a database.
type MigrationStatus struct {
	Version   int       `json:"version"`
	Name      string    `json:"name"`
	Applied   bool      `json:"applied"`
	AppliedAt time.Time `json:"applied_at,omitzero"`
}

// loadMigrations reads the embedded migration files, oldest first. Every
// version needs both an up and a down file.
func loadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, direction, err := parseFilename(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid migration filename %q: %w", entry.Name(), err)
		}

		body, err := fs.ReadFile(migrationsFS, "migrations/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if m.Name != name {
			return nil, fmt.Errorf("migration %04d has mismatched names %q and %q", version, m.Name, name)
		}

		slot := &m.Up
		if direction == "down" {
			slot = &m.Down
		}
		if *slot != "" {
			return nil, fmt.Errorf("duplicate %s migration for version %04d", direction, version)
		}
		*slot = string(body)
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		switch {
		case m.Up == "":
			return nil, fmt.Errorf("migration %04d has no up file", m.Version)
		case m.Down == "":
			return nil, fmt.Errorf("migration %04d has no down file", m.Version)
		}
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })

	return out, nil
}

// parseFilename splits "NNNN_name.up.sql" into its version, name and direction.
func parseFilename(filename string) (int, string, string, error) {
	parts := migrationFile.FindStringSubmatch(filename)
	if parts == nil {
		return 0, "", "", fmt.Errorf("expected NNNN_name.{up,down}.sql")
	}

	version, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, "", "", fmt.Errorf("version %q: %w", parts[1], err)
	}
	if version == 0 {
		return 0, "", "", fmt.Errorf("version must be positive")
	}

	return version, parts[2], parts[3], nil
}

// migrator runs the embedded migrations against one connection.
type migrator struct {
	conn       *sql.DB
	migrations []Migration
	log        zerolog.Logger
}

func newMigrator(ctx context.Context, conn *sql.DB) (*migrator, error) {
	migrations, err := loadMigrations()
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}

	_, err = conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	return &migrator{conn: conn, migrations: migrations, log: logging.Component("db")}, nil
}

// applied maps each recorded version to the time it was applied.
func (m *migrator) applied(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.conn.QueryContext(ctx, "SELECT version, applied_at FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying applied versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int]time.Time)
	for rows.Next() {
		var (
			version int
			at      int64
		)
		if err := rows.Scan(&version, &at); err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		out[version] = time.Unix(0, at)
	}
	return out, rows.Err()
}

// up applies every pending migration in version order and returns how many ran.
func (m *migrator) up(ctx context.Context) (int, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}

		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("applying migration")
		err := m.inTx(ctx, mig.Up,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			mig.Version, mig.Name, time.Now().UnixNano(),
		)
		if err != nil {
			return ran, fmt.Errorf("migration %04d (%s): %w", mig.Version, mig.Name, err)
		}
		ran++
	}

	return ran, nil
}

// down reverts the newest steps applied migrations and returns them, newest
// first.
func (m *migrator) down(ctx context.Context, steps int) ([]Migration, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []Migration
	for _, mig := range slices.Backward(m.migrations) {
		if _, ok := applied[mig.Version]; ok {
			candidates = append(candidates, mig)
		}
	}
	if steps > len(candidates) {
		return nil, fmt.Errorf("cannot roll back %d migration(s): only %d applied", steps, len(candidates))
	}

	var reverted []Migration
	for _, mig := range candidates[:steps] {
		m.log.Info().Int("version", mig.Version).Str("name", mig.Name).Msg("reverting migration")
		err := m.inTx(ctx, mig.Down, "DELETE FROM schema_migrations WHERE version = ?", mig.Version)
		if err != nil {
			return reverted, fmt.Errorf("revert migration %04d (%s): %w", mig.Version, mig.Name, err)
		}
		reverted = append(reverted, mig)
	}

	return reverted, nil
}

func (m *migrator) status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		at, ok := applied[mig.Version]
		st := MigrationStatus{Version: mig.Version, Name: mig.Name, Applied: ok}
		if ok {
			st.AppliedAt = at
		}
		out = append(out, st)
	}
	return out, nil
}

// inTx runs a migration body and its schema_migrations bookkeeping statement
// in one transaction.
func (m *migrator) inTx(ctx context.Context, body, record string, args ...any) error {
	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}

func migrateUp(ctx context.Context, conn *sql.DB) error {
	m, err := newMigrator(ctx, conn)
	if err != nil {
		return err
	}
	_, err = m.up(ctx)
	return err
}

// Migrations lists every embedded migration and whether it is applied.
func (db *DB) Migrations(ctx context.Context) ([]MigrationStatus, error) {
	m, err := newMigrator(ctx, db.conn)
	if err != nil {
		return nil, err
	}
	return m.status(ctx)
}

// Rollback reverts the newest steps applied migrations, dropping the tables
// they created. The next Open re-applies them on an empty schema.
func (db *DB) Rollback(ctx context.Context, steps int) ([]Migration, error) {
	m, err := newMigrator(ctx, db.conn)
	if err != nil {
		return nil, err
	}
	return m.down(ctx, steps)
}
