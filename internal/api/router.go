package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/maintrack/maintenance-system/docs"
	"github.com/maintrack/maintenance-system/internal/api/handler"
	"github.com/maintrack/maintenance-system/internal/api/middleware"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
	"github.com/maintrack/maintenance-system/internal/core/service"
	"github.com/maintrack/maintenance-system/internal/core/token"
	mongodb "github.com/maintrack/maintenance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/maintrack/maintenance-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	codec *token.Codec,
	audit ports.AuditSink,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("maintenance"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	itemRepo := mongodb.NewItemRepository(db)
	maintenanceRepo := mongodb.NewMaintenanceRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, codec, throttle, audit, log)
	userService := service.NewUserService(userRepo, audit, log)
	itemService := service.NewItemService(itemRepo, maintenanceRepo, audit, log)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, itemRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)

	requireAuth := middleware.Auth(codec)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/register", authHandler.Register, middleware.AuthOptional(codec))
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/auth/me", authHandler.Me, requireAuth)

	// --- Item routes ---
	items := e.Group("/v1/items", requireAuth)
	items.GET("", itemHandler.List)
	items.POST("", itemHandler.Create)
	items.GET("/:id", itemHandler.Get)
	items.PUT("/:id", itemHandler.Update)
	items.DELETE("/:id", itemHandler.Delete, requireAdmin)

	// --- Maintenance routes ---
	maintenance := e.Group("/v1/maintenance", requireAuth)
	maintenance.GET("", maintenanceHandler.List)
	maintenance.POST("", maintenanceHandler.Create)
	maintenance.GET("/history/:itemId", maintenanceHandler.History)

	// --- User administration (ADMIN only) ---
	users := e.Group("/v1/users", requireAuth, requireAdmin)
	users.GET("", userHandler.List)
	users.PUT("/:id", userHandler.ChangeRole)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Dashboard pages ---
	// The SPA is served with an HTML5 fallback behind the page guard; the
	// guard redirects before any asset is touched.
	e.Use(middleware.Guard(codec, middleware.DefaultGuardConfig()))
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  "web/dist",
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/v1/") ||
				strings.HasPrefix(p, "/health") ||
				strings.HasPrefix(p, "/metrics") ||
				strings.HasPrefix(p, "/swagger")
		},
	}))

	return e
}
