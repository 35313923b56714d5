package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Edustart-Tech/App-Release-Manager/internal/catalog"
	"github.com/Edustart-Tech/App-Release-Manager/internal/config"
	"github.com/Edustart-Tech/App-Release-Manager/internal/database"
	"github.com/Edustart-Tech/App-Release-Manager/internal/ghrelease"
	"github.com/Edustart-Tech/App-Release-Manager/internal/logging"
	"github.com/Edustart-Tech/App-Release-Manager/internal/publish"
	"github.com/Edustart-Tech/App-Release-Manager/internal/server"
	"github.com/Edustart-Tech/App-Release-Manager/internal/server/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := logging.New(cfg.LogPath)
	defer logger.Sync()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	host := ghrelease.New(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo)
	h := &handlers.Handler{
		Catalog:   catalog.New(db),
		Publisher: publish.NewPublisher(db, host, logger),
		Log:       logger,
	}

	app := fiber.New(fiber.Config{
		ServerHeader: "Updater",
		AppName:      "Updater Service",
		BodyLimit:    200 * 1024 * 1024, // installers can be large
	})
	server.RegisterRoutes(app, h)

	logger.Info("server listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
