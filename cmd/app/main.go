package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wichananm65/mill-store-backend/internal/config"
	"github.com/wichananm65/mill-store-backend/internal/database"
	"github.com/wichananm65/mill-store-backend/internal/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logging.New(cfg.LogLevel)
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("connect database")
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			log.WithError(err).Fatal("migrate database")
		}
		n, err := database.Seed(ctx, db)
		if err != nil {
			log.WithError(err).Fatal("seed database")
		}
		if n > 0 {
			log.WithField("products", n).Info("seeded starter catalogue")
		}
	} else {
		log.Warn("DATABASE_URL is not set, using in-memory storage")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.WithError(err).Fatal("create upload dir")
	}

	app := newApp(cfg, log, newRepositories(db))

	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		if err := app.Listen(cfg.Addr); err != nil {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
