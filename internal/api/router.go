package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/locauto/rental-system/docs"
	"github.com/locauto/rental-system/internal/api/handler"
	"github.com/locauto/rental-system/internal/api/middleware"
	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
	"github.com/locauto/rental-system/internal/core/service"
	"github.com/locauto/rental-system/internal/infrastructure/config"
	mongodb "github.com/locauto/rental-system/internal/infrastructure/db/mongo"
	redisdb "github.com/locauto/rental-system/internal/infrastructure/db/redis"
	"github.com/locauto/rental-system/internal/pkg/password"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditTrail, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	// --- Dependencies ---
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	issuer := service.NewTokenIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	userRepo := mongodb.NewUserRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)
	vehicleCache := redisdb.NewVehicleCache(rdb)

	authService := service.NewAuthService(userRepo, issuer, hasher, audit, log)
	userService := service.NewUserService(userRepo, hasher, audit, log)
	vehicleService := service.NewVehicleService(vehicleRepo, vehicleCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)

	authenticated := middleware.Auth(issuer, userRepo)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// --- User administration ---
	users := e.Group("/api/users", authenticated)
	users.GET("/me", userHandler.Me)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Fleet ---
	vehicles := e.Group("/api/vehicles", authenticated)
	vehicles.GET("", vehicleHandler.List)
	vehicles.GET("/search/:registration", vehicleHandler.Search)
	vehicles.GET("/price/:max", vehicleHandler.FilterByPrice)
	vehicles.GET("/:id", vehicleHandler.Get)
	vehicles.POST("", vehicleHandler.Create, adminOnly)
	vehicles.PUT("/:id", vehicleHandler.Update, adminOnly)
	vehicles.DELETE("/:id", vehicleHandler.Delete, adminOnly)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
