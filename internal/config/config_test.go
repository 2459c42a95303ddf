package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := FromReader(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTP.Address)
	assert.Equal(t, 10, cfg.HTTP.LoginRateLimit)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "database/base_de_datos.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 72*time.Hour, cfg.Security.SessionTTL)
	assert.Empty(t, cfg.Database.Host, "postgres defaults only apply to the postgres driver")
	assert.False(t, cfg.HTTP.TrustProxy)
}

func TestFromReaderPostgres(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := FromReader(strings.NewReader(`
http:
  address: ":8080"
  trust_proxy: true
database:
  driver: postgres
  host: pg
  user: school
  password: "s3cr3t"
  name: et21
security:
  session_ttl: 2h
`))
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.HTTP.TrustProxy)
	assert.Equal(t, 2*time.Hour, cfg.Security.SessionTTL)

	u, err := cfg.Database.AppURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://school:s3cr3t@pg:5432/et21?sslmode=disable", u)
}

func TestFromReaderRejectsUnknownFields(t *testing.T) {
	_, err := FromReader(strings.NewReader("http:\n  adress: \":1\"\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("PORT", "")
	_, err := FromReader(strings.NewReader("database:\n  driver: mysql\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.driver")

	_, err = FromReader(strings.NewReader("base_url: not-a-url\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")

	_, err = FromReader(strings.NewReader("http:\n  login_rate_limit: -1\nsecurity:\n  session_ttl: -1s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login_rate_limit")
	assert.Contains(t, err.Error(), "session_ttl")
}

func TestPortEnvOverridesAddress(t *testing.T) {
	t.Setenv("PORT", "4100")
	cfg, err := FromReader(strings.NewReader("http:\n  address: \":8080\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":4100", cfg.HTTP.Address)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	require.NotNil(t, cfg)
	assert.Equal(t, ":3000", cfg.HTTP.Address)
	assert.Equal(t, "change-me", cfg.Security.JWTSecret)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: https://et21.example\nsecurity:\n  jwt_secret: abc\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.Security.JWTSecret)
	assert.True(t, cfg.SecureCookies())
}
