package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAppliesMigrations(t *testing.T) {
	d, err := OpenSQLite("file:db_migrations?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 2, n)

	for _, table := range []string{"usuarios", "mensajes"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpenSQLiteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "base_de_datos.db")
	d, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = d.Exec(`INSERT INTO usuarios (email, password) VALUES ('a@et21.edu.ar', 'x')`)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	d, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM usuarios`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenSQLiteAdoptsLegacyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	legacy, err := sqlOpen(path)
	require.NoError(t, err)
	_, err = legacy.Exec(`CREATE TABLE usuarios (email TEXT, password TEXT); INSERT INTO usuarios VALUES ('old@et21.edu.ar', 'plain')`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	d, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	var pw string
	require.NoError(t, d.QueryRow(`SELECT password FROM usuarios WHERE email = ?`, "old@et21.edu.ar").Scan(&pw))
	assert.Equal(t, "plain", pw)
}

func TestOpenSQLiteDedupesLegacyEmails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	legacy, err := sqlOpen(path)
	require.NoError(t, err)
	_, err = legacy.Exec(`CREATE TABLE usuarios (id INTEGER PRIMARY KEY, email TEXT, password TEXT);
		INSERT INTO usuarios (email, password) VALUES
			('a@b.c', 'primera'),
			('otro@et21.edu.ar', 'x'),
			('a@b.c', 'segunda')`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	d, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	rows, err := d.Query(`SELECT email, password FROM usuarios ORDER BY email`)
	require.NoError(t, err)
	defer rows.Close()
	got := map[string]string{}
	for rows.Next() {
		var email, pw string
		require.NoError(t, rows.Scan(&email, &pw))
		got[email] = pw
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]string{"a@b.c": "primera", "otro@et21.edu.ar": "x"}, got)

	_, err = d.Exec(`INSERT INTO usuarios (email, password) VALUES ('a@b.c', 'tercera')`)
	assert.Error(t, err, "unique index is in place")
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	require.Error(t, err)
}

func sqlOpen(path string) (*sql.DB, error) { return sql.Open("sqlite3", path) }
