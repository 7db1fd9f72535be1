// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"context"
	"fmt"
	"time"

	"inkstream/internal/cache"
	"inkstream/internal/config"
	"inkstream/internal/database"
	"inkstream/internal/media"
	"inkstream/internal/middleware"
	"inkstream/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	media          *media.Storage
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	groupRepo      repository.GroupRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	followRepo     repository.FollowRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	storage, err := media.New(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("media storage setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, storage)
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Tests use this with a sqlite database and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, storage *media.Storage) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		media:          storage,
		promMiddleware: fiberprometheus.New("inkstream"),
		userRepo:       repository.NewUserRepository(db),
		groupRepo:      repository.NewGroupRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		followRepo:     repository.NewFollowRepository(db),
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images are served statically from the media root
	if s.media != nil {
		app.Static("/media", s.media.Root())
	}

	// Session routes
	auth := app.Group("/auth")
	auth.Get("/login", s.LoginForm)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/signup", s.SignupForm)
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/logout", s.Logout)

	// Public feed routes; OptionalAuth resolves the viewer so pages can
	// show follow state.
	app.Get("/", middleware.OptionalAuth, s.Home)
	app.Get("/group/:slug", middleware.OptionalAuth, s.GroupPosts)
	app.Get("/posts/:id", middleware.OptionalAuth, s.PostDetail)
	app.Get("/profile/:username", middleware.OptionalAuth, s.Profile)

	// Authoring and follow routes require a session
	app.Get("/create", middleware.AuthRequired, s.NewPostForm)
	app.Post("/create", middleware.AuthRequired, s.CreatePost)
	app.Get("/posts/:id/edit", middleware.AuthRequired, s.EditPostForm)
	app.Post("/posts/:id/edit", middleware.AuthRequired, s.EditPost)
	app.Post("/posts/:id/comment", middleware.AuthRequired, s.AddComment)
	app.Get("/follow", middleware.AuthRequired, s.FollowFeed)
	app.Get("/profile/:username/follow", middleware.AuthRequired, s.FollowAuthor)
	app.Get("/profile/:username/unfollow", middleware.AuthRequired, s.UnfollowAuthor)

	// Unknown paths yield a not-found status
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Page not found",
		})
	})
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database and cache are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"status": "ok", "database": "ok", "cache": "ok"}
	healthy := true

	if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unreachable"
		healthy = false
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			status["cache"] = "unreachable"
		}
	} else {
		status["cache"] = "disabled"
	}

	if !healthy {
		status["status"] = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}
