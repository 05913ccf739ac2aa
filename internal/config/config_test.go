package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "consultations"

[notify_service]
url = "http://notify.internal:8090"
timeout = 3

[scheduler]
poll_interval = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "http://notify.internal:8090", cfg.NotifyService.URL)
	assert.Equal(t, 5, cfg.Scheduler.PollInterval)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "svc"
dbname = "consultations"

[notify_service]
url = "http://notify.internal:8090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Scheduler.PollInterval)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "svc"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dbname")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("does-not-exist.toml")
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "svc",
		Password: "secret",
		DBName:   "consultations",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=svc password=secret dbname=consultations sslmode=disable",
		cfg.DSN(),
	)
}
