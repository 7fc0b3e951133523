// Package server contains HTTP handlers and routing for the board API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/cache"
	"kanban/internal/config"
	"kanban/internal/database"
	"kanban/internal/middleware"
	"kanban/internal/models"
	"kanban/internal/repository"
	"kanban/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
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
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	issuer *service.TokenIssuer

	userRepo      repository.UserRepository
	boardRepo     repository.BoardRepository
	boardUserRepo repository.BoardUserRepository
	listRepo      repository.ListRepository
	cardRepo      repository.CardRepository

	userService      *service.UserService
	boardService     *service.BoardService
	boardUserService *service.BoardUserService
	listService      *service.ListService
	cardService      *service.CardService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Use this in tests or when a bootstrap layer establishes
// DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	issuer := service.NewTokenIssuer(cfg.JWTSecret)

	userRepo := repository.NewUserRepository(db, issuer.Sign)
	boardRepo := repository.NewBoardRepository(db)
	boardUserRepo := repository.NewBoardUserRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)

	prom := middleware.InitMetrics("kanban-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		issuer:         issuer,
		userRepo:       userRepo,
		boardRepo:      boardRepo,
		boardUserRepo:  boardUserRepo,
		listRepo:       listRepo,
		cardRepo:       cardRepo,
	}
	server.userService = service.NewUserService(userRepo, issuer)
	server.boardService = service.NewBoardService(boardRepo)
	server.boardUserService = service.NewBoardUserService(boardUserRepo)
	server.listService = service.NewListService(listRepo)
	server.cardService = service.NewCardService(cardRepo)

	return server, nil
}

// ErrorHandler maps errors escaping handlers onto the standard
// envelope. Errors that carry no status land on 409 when the response
// status is still 2xx, matching the behavior existing clients depend
// on.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	status := c.Response().StatusCode()

	var appErr *models.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
	default:
		if status >= 200 && status < 300 {
			status = fiber.StatusConflict
		}
	}

	if status >= 500 {
		middleware.Logger.Error("request failed",
			"path", c.Path(),
			"method", c.Method(),
			"error", err.Error(),
		)
	}

	return models.RespondWithError(c, status, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid)
	app.Use(middleware.StructuredLogger())

	// Distributed tracing
	app.Use(middleware.Tracing())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
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
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Kanban Backend Metrics Dashboard",
	}))

	// Public auth routes
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Everything else requires a stored token AND a valid JWT.
	authed := s.CredentialRequired()
	perm := s.PermissionRequired()

	protectedUsers := api.Group("/users", authed, perm)
	protectedUsers.Get("/", s.GetUsers)
	protectedUsers.Get("/count", s.GetUserCount)
	protectedUsers.Put("/change-password/:id", s.ChangePassword)
	protectedUsers.Get("/:id", s.GetUser)
	protectedUsers.Post("/", s.CreateUser)
	protectedUsers.Put("/:id", s.UpdateUser)
	protectedUsers.Patch("/:id", s.PatchUser)
	protectedUsers.Delete("/:id", s.DeleteUser)

	boards := api.Group("/boards", authed, perm)
	boards.Get("/", s.GetBoards)
	boards.Get("/count", s.GetBoardCount)
	boards.Get("/:id", s.GetBoard)
	boards.Post("/", s.CreateBoard)
	boards.Put("/:id", s.UpdateBoard)
	boards.Patch("/:id", s.PatchBoard)
	boards.Delete("/:id", s.DeleteBoard)

	// Membership rows are addressed by board_id + user_id query params.
	boardUsers := api.Group("/board-users", authed, perm)
	boardUsers.Get("/count", s.GetBoardUserCount)
	boardUsers.Get("/find", s.GetBoardUser)
	boardUsers.Get("/", s.GetBoardUsers)
	boardUsers.Post("/", s.CreateBoardUser)
	boardUsers.Put("/", s.UpdateBoardUser)
	boardUsers.Patch("/", s.PatchBoardUser)
	boardUsers.Delete("/", s.DeleteBoardUser)

	lists := api.Group("/lists", authed, perm)
	lists.Get("/", s.GetLists)
	lists.Get("/count", s.GetListCount)
	lists.Get("/:id", s.GetList)
	lists.Post("/", s.CreateList)
	lists.Put("/:id", s.UpdateList)
	lists.Patch("/:id", s.PatchList)
	lists.Delete("/:id", s.DeleteList)

	cards := api.Group("/cards", authed, perm)
	cards.Get("/", s.GetCards)
	cards.Get("/count", s.GetCardCount)
	cards.Get("/:id", s.GetCard)
	cards.Post("/", s.CreateCard)
	cards.Put("/:id", s.UpdateCard)
	cards.Patch("/:id", s.PatchCard)
	cards.Delete("/:id", s.DeleteCard)

	// Catch-all must be registered last.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"statusCode": fiber.StatusNotFound,
			"message":    "Resource not found",
		})
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional; the API works without rate-limit storage.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:      "Kanban API",
		ErrorHandler: s.ErrorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
