package logger

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config represents logger configuration
type Config struct {
	Level            string  // debug, info, warn, error
	Format           string  // json, console
	OutputPath       string  // stdout, stderr, or file path
	SlowQuerySeconds float64 // slow query threshold
	EnableSampling   bool
	ServiceName      string
	ServiceVersion   string
	Environment      string
	Rotation         Rotation // file output only
}

// Rotation bounds the log files kept when OutputPath is a file.
// Zero fields take the defaults below.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var defaultRotation = Rotation{MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28, Compress: true}

// NewWithConfig creates a new zap logger with full configuration
func NewWithConfig(cfg Config) (*zap.Logger, error) {
	core := zapcore.NewCore(newEncoder(cfg), writeSyncer(cfg.OutputPath, cfg.Rotation), ParseLevel(cfg.Level))

	if cfg.EnableSampling {
		// first 100 entries per second, then every 10th
		core = zapcore.NewSamplerWithOptions(core, time.Second, 100, 10)
	}

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).With(
		zap.String("service", cfg.ServiceName),
		zap.String("version", cfg.ServiceVersion),
		zap.String("environment", cfg.Environment),
	), nil
}

func newEncoder(cfg Config) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.MessageKey = "message"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.MillisDurationEncoder

	if cfg.Format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}

	// Colors only make sense on a terminal
	if cfg.Environment != "production" && !isFile(cfg.OutputPath) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

// ParseLevel converts a level name to zapcore.Level.
// "warning" is accepted; unknown values fall back to info.
func ParseLevel(level string) zapcore.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zapcore.WarnLevel
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil || level == "" {
		return zapcore.InfoLevel
	}
	return lvl
}

func isFile(outputPath string) bool {
	return outputPath != "" && outputPath != "stdout" && outputPath != "stderr"
}

func writeSyncer(outputPath string, r Rotation) zapcore.WriteSyncer {
	switch outputPath {
	case "stdout", "":
		return zapcore.Lock(os.Stdout)
	case "stderr":
		return zapcore.Lock(os.Stderr)
	}

	if r == (Rotation{}) {
		r = defaultRotation
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   outputPath,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   r.Compress,
	})
}
