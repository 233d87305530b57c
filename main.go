package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hatakesocial/badge-engine/badgeengine"
	"github.com/hatakesocial/badge-engine/badgeengine/assets"
	"github.com/hatakesocial/badge-engine/badgeengine/badges"
	"github.com/hatakesocial/badge-engine/badgeengine/database"
	"github.com/hatakesocial/badge-engine/badgeengine/database/repositories"
	"github.com/hatakesocial/badge-engine/badgeengine/logger"
	"github.com/hatakesocial/badge-engine/server"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting badge engine",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := badgeengine.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	customHandler.SetLevel(cfg.Log.Level)
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(-1)
	}
	logger.LogSystem("Database ready")

	badgeRepo := repositories.NewBadgeRepository(db.BunDB())
	activityRepo := repositories.NewActivityRepository(db.BunDB())
	notificationRepo := repositories.NewNotificationRepository(db.BunDB())

	cacheTTL := badges.DefaultCacheTTL
	if cfg.Badges.CacheTTLMinutes > 0 {
		cacheTTL = time.Duration(cfg.Badges.CacheTTLMinutes) * time.Minute
	}
	definitionCache := badges.NewDefinitionCache(badgeRepo, cacheTTL, nil)
	badgeService := badges.NewService(definitionCache, badgeRepo, activityRepo)

	var spacesService *assets.SpacesService
	if cfg.Spaces.Key != "" {
		spacesService = assets.NewSpacesService(
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.IconRoot,
		)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Badge Engine API",
		ServerHeader: "badge-engine",
	})
	app.Use(recover.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(server.LoggingMiddleware())

	webApp := &server.WebApp{
		DB:            db,
		Badges:        badgeService,
		Notifications: notificationRepo,
		Assets:        spacesService,
		Version:       version,
		Commit:        commit,
	}
	server.SetupRoutes(app, webApp, cfg.HTTP.AdminKey)

	addr := cfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server", slog.String("address", addr))
		if err := app.Listen(addr); err != nil {
			slog.Error("Failed to start server", slog.Any("error", err))
		}
	}()

	<-c
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.Any("error", err))
	}

	slog.Info("Shutdown complete")
}
