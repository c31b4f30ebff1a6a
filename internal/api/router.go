package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mithaighar/sweetshop-api/internal/api/handler"
	"github.com/mithaighar/sweetshop-api/internal/api/middleware"
	"github.com/mithaighar/sweetshop-api/internal/core/domain"
	"github.com/mithaighar/sweetshop-api/internal/core/service"
	mongodb "github.com/mithaighar/sweetshop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mithaighar/sweetshop-api/internal/infrastructure/db/redis"
	"github.com/mithaighar/sweetshop-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the catalog cache is then disabled.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sweetRepo := mongodb.NewSweetRepository(db)

	var cache service.CatalogCache
	if rdb != nil {
		cache = redisdb.NewCatalogCache(rdb, cfg.Redis.CacheTTL)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	sweetService := service.NewSweetService(sweetRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)

	authRequired := middleware.Auth(cfg.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Routes ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	sweets := apiGroup.Group("/sweets", authRequired)
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.POST("", sweetHandler.Add, adminOnly)
	sweets.PUT("/:id", sweetHandler.Update, adminOnly)
	sweets.DELETE("/:id", sweetHandler.Delete, adminOnly)
	sweets.POST("/:id/purchase", sweetHandler.Purchase)
	sweets.POST("/:id/restock", sweetHandler.Restock, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	apiGroup.GET("/health", healthHandler.Liveness)
	apiGroup.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
