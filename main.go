package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"shiftwrite/config"
	"shiftwrite/database"
	"shiftwrite/gemini"
	"shiftwrite/handlers"
	"shiftwrite/logger"
	"shiftwrite/routes"
	"shiftwrite/session"
	"shiftwrite/storage"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading configuration", zap.Error(err))
	}

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("applying schema", zap.Error(err))
	}

	generator, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("creating gemini client", zap.Error(err))
	}
	defer generator.Close()

	h := handlers.New(
		storage.NewPostgresUserStore(pool),
		storage.NewPostgresHistoryStore(pool),
		generator,
		session.NewManager(),
		[]byte(cfg.JWTSecret),
		logger.Named(log, "handlers"),
	)

	app := fiber.New()
	app.Use(cors.New())
	routes.SetupRoutes(app, h, []byte(cfg.JWTSecret))

	log.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
