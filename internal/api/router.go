package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/b5commerce/accounts-api/internal/api/handler"
	"github.com/b5commerce/accounts-api/internal/api/middleware"
	"github.com/b5commerce/accounts-api/internal/core/service"
	mongodb "github.com/b5commerce/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/b5commerce/accounts-api/internal/infrastructure/db/redis"
	"github.com/b5commerce/accounts-api/internal/infrastructure/http/handlers"
)

// basePath is the legacy mount point carried over from the first deployment.
const basePath = "/b5/users"

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	profileCache := redisdb.NewProfileCache(rdb)
	tokenService := service.NewTokenService(jwtSecret, 0)
	userService := service.NewUserService(userRepo, tokenService, profileCache, log)
	userHandler := handler.NewUserHandler(userService)

	auth := middleware.Auth(tokenService)
	adminOnly := middleware.AdminOnly()

	// --- Account routes ---
	users := e.Group(basePath)
	users.POST("/create-user", userHandler.CreateUser, auth, adminOnly)
	users.POST("/login", userHandler.Login)
	users.GET("/profile", userHandler.GetProfile, auth)
	users.GET("/get-all-profile", userHandler.GetAllUsers, auth, adminOnly)
	users.GET("/get-profile/:userId", userHandler.GetUserByID, auth, adminOnly)
	users.PUT("/update-profile/:userId", userHandler.UpdateUser, auth, adminOnly)
	users.PUT("/reset-password", userHandler.ResetPassword, auth, adminOnly)

	// --- Operational surface (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
