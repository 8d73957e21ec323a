package logger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := NewWithConfig(Config{
		Level:       "info",
		Format:      "json",
		OutputPath:  path,
		ServiceName: "article-api",
		Environment: "test",
	})
	require.NoError(t, err)

	l.Info("hello")
	assert.NoError(t, l.Sync())
	assert.FileExists(t, path)
}

func TestWriteSyncer_RotationDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotated.log")

	ws := writeSyncer(path, Rotation{})
	_, err := ws.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.False(t, isFile("stdout"))
	assert.False(t, isFile(""))
	assert.True(t, isFile(path))
}

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), 42)
	WithContext(ctx, base).Info("scoped")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(42), fields["user_id"])

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "42", GetUserID(ctx))
	assert.Empty(t, GetUserID(context.Background()))
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), 0.1, "warn")

	fc := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("record not found is not an error", func(t *testing.T) {
		gl.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
		assert.Equal(t, 0, logs.FilterMessage("gorm query error").Len())
	})

	t.Run("errors are logged", func(t *testing.T) {
		gl.Trace(context.Background(), time.Now(), fc, errors.New("syntax error"))
		assert.Equal(t, 1, logs.FilterMessage("gorm query error").Len())
	})

	t.Run("slow queries are warned", func(t *testing.T) {
		gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
		assert.Equal(t, 1, logs.FilterMessage("gorm slow query").Len())
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		before := logs.Len()
		gl.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), fc, errors.New("x"))
		assert.Equal(t, before, logs.Len())
	})
}

func TestGormLogger_ParamsFilter(t *testing.T) {
	var _ gorm.ParamsFilter = (*GormLogger)(nil)

	gl := NewGormLogger(zap.NewNop(), 0, "debug")
	sql, params := gl.ParamsFilter(context.Background(), "UPDATE users SET api_token = ?", "secret-token")

	assert.Equal(t, "UPDATE users SET api_token = ?", sql)
	assert.Nil(t, params)
}
