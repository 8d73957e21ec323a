package infrastructure

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"article-api/internal/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DB: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
			AutoMigrate:  true,
			MaxIdleConns: 1,
		},
		Logger: config.LoggerConfig{Level: "info", SlowQuerySeconds: 1},
	}
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := NewDatabase(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("articles"))
	assert.True(t, db.Migrator().HasIndex("users", "idx_users_api_token"))
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DB.Driver = "oracle"

	_, err := NewDatabase(cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDatabaseCheck(t *testing.T) {
	db, err := NewDatabase(sqliteConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)

	check := DatabaseCheck(db)
	assert.NoError(t, check(context.Background()))

	require.NoError(t, CloseDatabase(db))
	assert.Error(t, check(context.Background()))
}

func TestCloseDatabase_Nil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}

func TestNewRedisClient(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		client, err := NewRedisClient(context.Background(), &config.Config{}, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("enabled", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{Redis: config.RedisConfig{
			Enabled:  true,
			Host:     mr.Host(),
			Port:     mr.Port(),
			PoolSize: 2,
		}}

		client, err := NewRedisClient(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.NoError(t, client.Close())
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{Redis: config.RedisConfig{Enabled: true, Host: mr.Host(), Port: mr.Port()}}
		mr.Close()

		_, err := NewRedisClient(context.Background(), cfg, zaptest.NewLogger(t))
		assert.ErrorContains(t, err, "throttling store")
	})
}
