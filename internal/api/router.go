package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sanad-aid/registry-api/internal/api/handler"
	"github.com/sanad-aid/registry-api/internal/api/middleware"
	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
	"github.com/sanad-aid/registry-api/internal/core/service"
	"github.com/sanad-aid/registry-api/internal/infrastructure/config"
	mongodb "github.com/sanad-aid/registry-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sanad-aid/registry-api/internal/infrastructure/db/redis"
)

// Deps carries the wired collaborators the router needs. The audit
// recorder is injected so the dispatcher's lifecycle stays with main.
type Deps struct {
	Mongo *mongo.Database
	Redis *redis.Client
	Audit ports.AuditRecorder
	Cfg   *config.Config
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("registry"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(d.Mongo)
	householdRepo := mongodb.NewHouseholdRepository(d.Mongo)
	settingsRepo := mongodb.NewSettingsRepository(d.Mongo)
	auditRepo := mongodb.NewAuditRepository(d.Mongo)
	lockouts := redisdb.NewLockoutStore(d.Redis)
	sessionStore := redisdb.NewSessionStore(d.Redis)

	settingsService := service.NewSettingsService(settingsRepo, d.Cfg.Auth.SettingsRefresh, d.Log)
	authService := service.NewAuthService(
		identityRepo, householdRepo, lockouts, settingsService, d.Audit,
		service.LockoutConfig{
			MaxAttempts:     d.Cfg.Auth.MaxAttempts,
			LockoutDuration: time.Duration(d.Cfg.Auth.LockoutMinutes) * time.Minute,
			WarnAfter:       d.Cfg.Auth.WarnAfter,
		},
		d.Log,
	)
	userService := service.NewUserService(identityRepo, settingsService, d.Audit)

	sessions := middleware.NewSessionManager(
		d.Cfg.SessionSecret, sessionStore, identityRepo,
		d.Cfg.Auth.SessionTTL, d.Cfg.Env != "development",
	)

	authHandler := handler.NewAuthHandler(authService, sessions)
	householdHandler := handler.NewHouseholdHandler(householdRepo)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	sessionRequired := sessions.Middleware()
	maintenanceGate := middleware.Maintenance(settingsService)

	// --- Auth surface: reachable even in maintenance mode ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, sessionRequired)
	e.POST("/auth/password", authHandler.ChangePassword, sessionRequired)

	// --- Public settings: clients need the maintenance flag itself ---
	e.GET("/settings/public", settingsHandler.Public)

	// --- Household-scoped routes ---
	households := e.Group("/households", sessionRequired, maintenanceGate,
		middleware.RequireCapability(domain.CapabilityHead))
	households.GET("/mine", householdHandler.Mine)

	// --- Administrative routes ---
	admin := e.Group("/admin", sessionRequired, maintenanceGate,
		middleware.RequireCapability(domain.CapabilityAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	// --- Root-only routes ---
	rootOnly := middleware.RequireCapability(domain.CapabilityRoot)
	admin.GET("/logs", auditHandler.List, rootOnly)
	admin.GET("/settings", settingsHandler.Get, rootOnly)
	admin.PUT("/settings", settingsHandler.Update, rootOnly)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
