package server

import (
	"context"
	"errors"
	"log"

	"github.com/joeyShea/travel-map/internal/auth"
	"github.com/joeyShea/travel-map/internal/config"
	"github.com/joeyShea/travel-map/internal/plans"
	"github.com/joeyShea/travel-map/internal/profile"
	"github.com/joeyShea/travel-map/internal/trip"
	"github.com/joeyShea/travel-map/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: jsonErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	requireAuth := auth.JWTMiddleware(s.Cfg.JWTSecret)
	viewerAuth := auth.OptionalJWTMiddleware(s.Cfg.JWTSecret)

	tripService := trip.NewService(s.DB)

	var store uploads.ObjectStore
	if s.Cfg.S3Bucket != "" {
		if s3Store, err := uploads.NewS3Store(context.Background(), s.Cfg.S3Bucket, s.Cfg.AWSRegion); err == nil {
			store = s3Store
		}
	}

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB, s.Redis), requireAuth)
	trip.RegisterRoutes(s.App.Group("/trips"), tripService, requireAuth, viewerAuth)
	plans.RegisterRoutes(s.App.Group("/users/me/plans"), plans.NewService(s.DB), requireAuth)
	profile.RegisterRoutes(s.App, profile.NewService(s.DB, tripService), requireAuth, viewerAuth)
	uploads.RegisterRoutes(s.App.Group("/uploads"), uploads.NewService(s.DB, store), requireAuth)
}

/// jsonErrorHandler keeps every failure in the {"error": reason} wire
// shape instead of fiber's plain-text default. Internal failures are
// logged and replaced with a generic reason so driver details never
// reach the client.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		msg = "internal error"
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
