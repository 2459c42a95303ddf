package db

import (
	"database/sql"
	"embed"
	"fmt"
	stdfs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var sqliteMigrations embed.FS

var migFileRe = regexp.MustCompile(`^([0-9]{4})_(.+)\.up\.sql$`)

// OpenSQLite opens (or creates) the credential database file and applies
// pending migrations. Existing files from the old node server already hold
// a usuarios table; migrations only add what is missing.
func OpenSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite dir: %w", err)
			}
		}
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	// journal_mode is not supported for in-memory databases.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if err := migrateSQLite(d); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

type sqliteMigration struct {
	version int
	file    string
}

func loadSQLiteMigrations() ([]sqliteMigration, error) {
	list, err := stdfs.ReadDir(sqliteMigrations, "migrations")
	if err != nil {
		return nil, err
	}
	var out []sqliteMigration
	for _, de := range list {
		m := migFileRe.FindStringSubmatch(de.Name())
		if de.IsDir() || m == nil {
			continue
		}
		var v int
		if _, err := fmt.Sscanf(m[1], "%04d", &v); err != nil {
			continue
		}
		out = append(out, sqliteMigration{version: v, file: "migrations/" + de.Name()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func migrateSQLite(d *sql.DB) error {
	if _, err := d.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
	)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	migs, err := loadSQLiteMigrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, m := range migs {
		var done bool
		if err := d.QueryRow(`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = ?)`, m.version).Scan(&done); err != nil {
			return fmt.Errorf("check applied %04d: %w", m.version, err)
		}
		if done {
			continue
		}
		text, err := sqliteMigrations.ReadFile(m.file)
		if err != nil {
			return err
		}
		tx, err := d.Begin()
		if err != nil {
			return err
		}
		if hook := beforeSQLiteMigration[m.version]; hook != nil {
			if err := hook(tx); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %04d prepare: %w", m.version, err)
			}
		}
		if _, err := tx.Exec(string(text)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %04d failed: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES(?)`, m.version); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// beforeSQLiteMigration runs inside a migration's transaction, ahead of its
// SQL, to bring legacy data into a shape the migration accepts.
var beforeSQLiteMigration = map[int]func(*sql.Tx) error{
	1: dedupeLegacyUsuarios,
}

// dedupeLegacyUsuarios keeps the first row per email in a usuarios table
// carried over from the old server, which never enforced unique emails.
func dedupeLegacyUsuarios(tx *sql.Tx) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'usuarios')`).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return nil
	}
	res, err := tx.Exec(`DELETE FROM usuarios WHERE rowid NOT IN (SELECT MIN(rowid) FROM usuarios GROUP BY email)`)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Warn("db.legacy_duplicates_removed", "table", "usuarios", "rows", n,
			"hint", "reset affected passwords with et21ctl user passwd")
	}
	return nil
}
