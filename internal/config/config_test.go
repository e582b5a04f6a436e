package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
environment = "development"
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
diary_data_path = "/tmp/judo-diary"
redis_host = "localhost"
redis_port = "6379"
prom_metrics_host = "localhost"
prom_metrics_port = "9001"
login_rate_limit_allowed_per_min = 5

[production]
environment = "production"
host = ""
port = 8080
log_level = "debug"
logs_path = "/var/log/judo-diary/service.log"
sentry_enabled = true
diary_data_path = "/data/judo-diary"
redis_host = "localhost"
redis_port = "6379"
prom_metrics_host = "localhost"
prom_metrics_port = "9001"
login_rate_limit_allowed_per_min = 10
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t)

	cfg, err := Load("development", path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.False(t, cfg.SentryEnabled)
	assert.Equal(t, "/tmp/judo-diary", cfg.DiaryDataPath)
	assert.Equal(t, 5, cfg.LoginRateLimitAllowedPerMin)

	cfg, err = Load("prod", path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, "/var/log/judo-diary/service.log", cfg.LogsPath)
}

func TestLoad_UnknownEnv(t *testing.T) {
	path := writeTestConfig(t)

	cfg, err := Load("staging", path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("development", "/invalid/path/config.toml")
	require.Error(t, err)
	assert.Nil(t, cfg)
}
