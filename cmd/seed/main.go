package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"article-api/cmd/api/app"
	"article-api/cmd/api/infrastructure"
	"article-api/cmd/api/server"
	"article-api/internal/adapter/db/seed"
	"article-api/internal/config"
	"article-api/pkg/security"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	defaults := seed.DefaultOptions()

	opts := seed.Options{}
	flag.IntVar(&opts.Users, "users", defaults.Users, "number of random users to create")
	flag.IntVar(&opts.Articles, "articles", defaults.Articles, "number of random articles to create")
	flag.StringVar(&opts.AdminEmail, "admin-email", defaults.AdminEmail, "email of the admin account")
	flag.StringVar(&opts.AdminPassword, "admin-password", defaults.AdminPassword, "password shared by every seeded account")
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	// Seeding always targets a migrated schema
	cfg.DB.AutoMigrate = true

	l, err := app.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := infrastructure.CloseDatabase(db); err != nil {
			l.Error("failed to close database", zap.Error(err))
		}
	}()

	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	res, err := seed.New(db, security.NewBcryptHasher(cfg.Auth.BcryptCost), l).Run(ctx, opts)
	if err != nil {
		return err
	}

	l.Info("seed complete",
		zap.Bool("admin_created", res.AdminCreated),
		zap.Int("users", res.Users),
		zap.Int("articles", res.Articles),
	)
	return nil
}
