// Command seed loads a badge catalog document into the database.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/hatakesocial/badge-engine/badgeengine"
	"github.com/hatakesocial/badge-engine/badgeengine/badges"
	"github.com/hatakesocial/badge-engine/badgeengine/database"
	"github.com/hatakesocial/badge-engine/badgeengine/database/repositories"
	"github.com/hatakesocial/badge-engine/badgeengine/logger"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	configPath := flag.String("config", "config.toml", "path to config")
	catalogPath := flag.String("catalog", "catalog.json", "path to catalog document")
	flag.Parse()

	cfg, err := badgeengine.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Badges.CatalogPath != "" && !isFlagSet("catalog") {
		*catalogPath = cfg.Badges.CatalogPath
	}

	file, err := os.Open(*catalogPath)
	if err != nil {
		slog.Error("Failed to open catalog", slog.Any("error", err))
		os.Exit(1)
	}
	defer file.Close()

	defs, err := badges.ParseCatalog(file)
	if err != nil {
		slog.Error("Failed to parse catalog", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
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
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.Any("error", err))
		os.Exit(1)
	}

	badgeRepo := repositories.NewBadgeRepository(db.BunDB())
	cache := badges.NewDefinitionCache(badgeRepo, badges.DefaultCacheTTL, nil)
	service := badges.NewService(cache, badgeRepo, repositories.NewActivityRepository(db.BunDB()))

	if err := service.LoadCatalog(ctx, defs); err != nil {
		slog.Error("Failed to load catalog", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Catalog loaded", slog.Int("badges", len(defs)))
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
