package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"port": 9090},
		"database": {"db_name": "from_file"},
		"security": {"jwt_secret": "file-secret"}
	}`), 0o600))

	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DIGEST_SCHEDULE", "@every 1m")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from_file", cfg.Database.DBName)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "file-secret", cfg.Security.JWTSecret)
	assert.Equal(t, "@every 1m", cfg.Worker.DigestSchedule)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.GetServerAddr())
}

func TestLoadConfigWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "@every 15m", cfg.Worker.DigestSchedule)
	assert.Error(t, cfg.RequireJWTSecret())
}

func TestRequireJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireJWTSecret())
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetDatabaseURL(t *testing.T) {
	db := DatabaseConfig{User: "shop", Password: "pw", Host: "localhost", Port: 5432, DBName: "carbon_shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://shop:pw@localhost:5432/carbon_shop?sslmode=disable", db.GetDatabaseURL())
}
