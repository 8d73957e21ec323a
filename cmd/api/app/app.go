package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"

	"article-api/cmd/api/di"
	"article-api/cmd/api/server"
	"article-api/internal/config"
	"article-api/pkg/logger"
)

// App owns the process lifecycle: container, HTTP server and logger
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Server    *server.Server
	Container *di.Container
}

// New loads configuration from CONFIG_PATH and builds the application.
// ctx bounds startup connections.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig(configPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := InitLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewWithConfig(ctx, cfg, l)
}

// NewWithConfig builds the application from an already loaded configuration
func NewWithConfig(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	container, err := di.NewContainer(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    l,
		Server:    server.New(cfg, l, container),
		Container: container,
	}, nil
}

// Run serves until ctx is canceled or the server stops on its own.
// Resources are released either way.
func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.Env),
	)

	served := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				served <- fmt.Errorf("server panic: %v", r)
			}
		}()
		served <- a.Server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("shutdown requested", zap.NamedError("cause", context.Cause(ctx)))
	case err := <-served:
		if err != nil {
			runErr = fmt.Errorf("server error: %w", err)
		}
	}

	return errors.Join(runErr, a.shutdown())
}

func (a *App) shutdown() error {
	timeout := time.Duration(a.Config.App.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.Logger.Info("graceful shutdown", zap.Duration("timeout", timeout))

	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	if err := a.Container.Close(); err != nil {
		a.Logger.Error("failed to close container", zap.Error(err))
		errs = append(errs, fmt.Errorf("container close: %w", err))
	}

	a.Logger.Info("application stopped")

	// Syncing a terminal returns EINVAL or ENOTTY
	if err := a.Logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}

	return errors.Join(errs...)
}

// InitLogger builds the process logger from the LOG_* settings
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:            cfg.Logger.Level,
		Format:           cfg.Logger.Format,
		OutputPath:       cfg.Logger.OutputPath,
		SlowQuerySeconds: cfg.Logger.SlowQuerySeconds,
		EnableSampling:   cfg.Logger.EnableSampling,
		ServiceName:      cfg.Logger.ServiceName,
		ServiceVersion:   cfg.Logger.ServiceVersion,
		Environment:      cfg.Env,
		Rotation: logger.Rotation{
			MaxSizeMB:  cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAgeDays: cfg.Logger.MaxAgeDays,
			Compress:   cfg.Logger.Compress,
		},
	})
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}
