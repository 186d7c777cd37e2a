// @title SALS Backend API
// @version 1.0
// @description Adaptive learning service: diagnostic quizzes, learning paths and final assessments.

// @host localhost:8000
// @BasePath /api

package main

import (
	"context"
	"flag"
	"log"

	"sals_backend/internal/app"
	"sals_backend/internal/config"
	"sals_backend/pkg/configwatcher"
	"sals_backend/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on start, even in release mode")
	watch := flag.Bool("watch-config", true, "reload the ai and quiz sections when config.yaml changes")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		return
	}

	if *watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := configwatcher.Watch(ctx, *configDir, application.ApplyConfig); err != nil {
				logger.Log.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	application.Run()
}
