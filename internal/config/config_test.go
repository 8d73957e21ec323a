package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 60, cfg.Auth.TokenLength)
	assert.Equal(t, 6, cfg.Auth.PasswordMinLength)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "article-api", cfg.Logger.ServiceName)
	assert.Equal(t, 100, cfg.Logger.MaxSizeMB)
	assert.True(t, cfg.Logger.Compress)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "DB_DRIVER=sqlite\nDB_SQLITE_PATH=/tmp/articles.db\nHTTP_PORT=9090\nAUTH_TOKEN_LENGTH=80\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/articles.db", cfg.DB.SQLitePath)
	assert.Equal(t, "9999", cfg.App.HTTPPort, "environment overrides file")
	assert.Equal(t, 80, cfg.Auth.TokenLength)
}

func TestLoadConfig_ProductionLogging(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, `unsupported DB_DRIVER "mysql"`},
		{"sqlite without path", func(c *Config) { c.DB.Driver = DriverSQLite; c.DB.SQLitePath = "" }, "DB_SQLITE_PATH"},
		{"short token", func(c *Config) { c.Auth.TokenLength = 8 }, "AUTH_TOKEN_LENGTH"},
		{"missing port", func(c *Config) { c.App.HTTPPort = "" }, "HTTP_PORT"},
		{"redis without host", func(c *Config) { c.Redis.Enabled = true; c.Redis.Host = "" }, "REDIS_HOST"},
		{"zero rate", func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }, "RATE_LIMIT_RPS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.DSN())
}
