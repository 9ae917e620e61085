package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"regexp"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is the database file used when no path is configured.
const DefaultPath = "MediaUserApp.db"

// Open opens (or creates) the local SQLite database file and applies pending
// migrations. Migrations are versioned .sql files under internal/db/migrations:
//
//	0001_name.up.sql / 0001_name.down.sql
//
// Schema changes are destructive: a down script drops what its up script
// created, and no data is carried across versions.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// journal_mode may not be supported for in-memory databases.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if err := applyMigrations(d); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// Version returns the highest applied migration version, or 0 on a fresh file.
func Version(d *sql.DB) (int, error) {
	if d == nil {
		return 0, errors.New("nil db")
	}
	if err := ensureMigrationsTable(d); err != nil {
		return 0, err
	}
	var v sql.NullInt64
	if err := d.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}

// RollbackLast reverts the most recently applied migration using its down script.
func RollbackLast(d *sql.DB) error {
	v, err := Version(d)
	if err != nil {
		return err
	}
	if v == 0 {
		return nil
	}
	migs, err := loadMigrations()
	if err != nil {
		return err
	}
	m, ok := migs[v]
	if !ok || m.downFile == "" {
		return fmt.Errorf("no down migration found for version %04d", v)
	}
	return runScript(d, m.downFile, `DELETE FROM schema_migrations WHERE version = ?`, v)
}

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version  int
	name     string
	upFile   string
	downFile string
}

var migFileRe = regexp.MustCompile(`^([0-9]{4})_(.+)\.(up|down)\.sql$`)

func loadMigrations() (map[int]migration, error) {
	entries := map[int]migration{}
	list, err := stdfs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return entries, nil
	}
	for _, de := range list {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		m := migFileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		var ver int
		if _, err := fmt.Sscanf(m[1], "%04d", &ver); err != nil {
			continue
		}
		item := entries[ver]
		item.version = ver
		item.name = m[2]
		p := "migrations/" + name
		if m[3] == "up" {
			item.upFile = p
		} else {
			item.downFile = p
		}
		entries[ver] = item
	}
	return entries, nil
}

func ensureMigrationsTable(d *sql.DB) error {
	_, err := d.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
        version INTEGER PRIMARY KEY,
        applied_at TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
    )`)
	return err
}

func appliedVersions(d *sql.DB) (map[int]bool, error) {
	if err := ensureMigrationsTable(d); err != nil {
		return nil, err
	}
	rows, err := d.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	got := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		got[v] = true
	}
	return got, rows.Err()
}

func applyMigrations(d *sql.DB) error {
	migs, err := loadMigrations()
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		return nil
	}
	applied, err := appliedVersions(d)
	if err != nil {
		return err
	}
	versions := make([]int, 0, len(migs))
	for v := range migs {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	for _, v := range versions {
		if applied[v] {
			continue
		}
		m := migs[v]
		if strings.TrimSpace(m.upFile) == "" {
			return fmt.Errorf("missing up migration for version %04d", v)
		}
		if err := runScript(d, m.upFile, `INSERT INTO schema_migrations(version) VALUES(?)`, v); err != nil {
			return fmt.Errorf("migration %04d failed: %w", v, err)
		}
	}
	return nil
}

// runScript executes an embedded script followed by the bookkeeping statement.
// Scripts starting with "-- NO_TX" run outside a transaction.
func runScript(d *sql.DB, file, bookkeeping string, version int) error {
	raw, err := migrationsFS.ReadFile(file)
	if err != nil {
		return err
	}
	text := string(raw)
	if strings.HasPrefix(strings.TrimSpace(text), "-- NO_TX") {
		if _, err := d.Exec(text); err != nil {
			return err
		}
		_, err := d.Exec(bookkeeping, version)
		return err
	}
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(text); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(bookkeeping, version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
