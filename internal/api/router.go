package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookvault/catalog-api/internal/api/handler"
	"github.com/bookvault/catalog-api/internal/api/middleware"
	"github.com/bookvault/catalog-api/internal/core/service"
	"github.com/bookvault/catalog-api/internal/infrastructure/cache"
	mongodb "github.com/bookvault/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookvault/catalog-api/internal/infrastructure/db/redis"
	"github.com/bookvault/catalog-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	bookCache := cache.New(cfg.CacheTTL)

	authService := service.NewAuthService(userRepo, tokenRepo, log)
	bookService := service.NewBookService(bookRepo, bookCache, cfg.BooksPerPage, log)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)

	requireAuth := middleware.Auth(authService)
	loginThrottle := middleware.RateLimit(
		redisdb.NewFixedWindowLimiter(rdb, cfg.LoginRateLimit, time.Minute),
	)

	// --- API routes ---
	v1 := e.Group("/api/v1")

	v1.POST("/register", authHandler.Register)
	v1.POST("/login", authHandler.Login, loginThrottle)
	v1.POST("/logout", authHandler.Logout, requireAuth)

	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:id", bookHandler.Get)
	v1.POST("/books", bookHandler.Create, requireAuth)
	v1.PUT("/books/:id", bookHandler.Update, requireAuth)
	v1.PATCH("/books/:id", bookHandler.Update, requireAuth)
	v1.DELETE("/books/:id", bookHandler.Delete, requireAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
