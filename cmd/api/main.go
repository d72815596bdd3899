package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"ruang-foto/internal/config"
	"ruang-foto/internal/domain"
	"ruang-foto/internal/handler"
	"ruang-foto/internal/middleware"
	"ruang-foto/internal/repository"
	"ruang-foto/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (serving without cache)", err)
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	// A single batch request may legitimately carry a whole session's files.
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    int(cfg.MaxUploadSize) * (domain.MaxSessionFiles + 1),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	rooms := v1.Group("/rooms/:roomId")
	rooms.Post("/photos", h.Photo.Upload)
	rooms.Get("/photos", h.Photo.List)
	rooms.Get("/photos/visible", h.Photo.Visible)
	rooms.Get("/stats", h.Photo.Stats)

	photos := v1.Group("/photos/:photoId")
	photos.Get("/", h.Photo.Get)
	photos.Post("/like", h.Reaction.ToggleLike)
	photos.Post("/dislike", h.Reaction.ToggleDislike)
	photos.Get("/reactions", h.Reaction.Counts)
	photos.Get("/reactions/status", h.Reaction.Status)

	uploads := v1.Group("/uploads")
	uploads.Post("/sessions", h.Upload.CreateSession)
	uploads.Get("/sessions/:sessionId", h.Upload.GetSession)
	uploads.Post("/sessions/:sessionId/logs", h.Upload.CreateLog)
	uploads.Get("/sessions/:sessionId/logs", h.Upload.SessionLogs)
	uploads.Post("/sessions/:sessionId/batch", h.Upload.RunBatch)
	uploads.Post("/sessions/:sessionId/finalize", h.Upload.Finalize)
	uploads.Post("/retry", h.Upload.Retry)
}
