package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/kiitfinder/lostfound-system/docs"
	"github.com/kiitfinder/lostfound-system/internal/api/handler"
	"github.com/kiitfinder/lostfound-system/internal/api/middleware"
	"github.com/kiitfinder/lostfound-system/internal/core/domain"
	"github.com/kiitfinder/lostfound-system/internal/core/ports"
	"github.com/kiitfinder/lostfound-system/internal/pkg/validation"
)

const authRateExpiry = 3 * time.Minute

// Dependencies carries everything the HTTP layer needs. Services are
// interfaces so the router can be exercised without real storage.
type Dependencies struct {
	Credentials ports.CredentialService
	Items       ports.ItemService
	Admin       ports.AdminService
	Profile     ports.ProfileService
	Tokens      ports.TokenService
	Accounts    middleware.IdentityResolver
	Audit       ports.AuditRecorder

	HealthChecks map[string]handler.DependencyCheck

	PublicPaths       []string
	CORSOrigins       []string
	AuthRatePerSecond float64
	AuthRateBurst     int

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The authentication gate runs for every request before routing reaches a
// handler.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Audit)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithRequestID(req.Context(), id)))
		},
	}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Authenticate(middleware.AuthConfig{
		Tokens:      deps.Tokens,
		Accounts:    deps.Accounts,
		PublicPaths: deps.PublicPaths,
		Log:         deps.Log,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Credentials)
	itemHandler := handler.NewItemHandler(deps.Items)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	profileHandler := handler.NewProfileHandler(deps.Profile)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	// --- Auth routes (throttled per client IP) ---
	auth := e.Group("/auth", authRateLimiter(deps.AuthRatePerSecond, deps.AuthRateBurst))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/bootstrap-admin", authHandler.BootstrapAdmin)

	// --- Items ---
	e.GET("/items", itemHandler.List)
	e.POST("/items", itemHandler.Create)
	e.GET("/items/mine", itemHandler.Mine)
	e.GET("/items/:id", itemHandler.Get)
	e.PUT("/items/:id", itemHandler.Update)
	e.PATCH("/items/:id/status", itemHandler.UpdateStatus)
	e.DELETE("/items/:id", itemHandler.Delete)

	// --- Admin ---
	admin := e.Group("/admin")
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/users/:id/items", adminHandler.ListUserItems)
	admin.GET("/items", adminHandler.ListItems)
	admin.DELETE("/items/:id", adminHandler.DeleteItem)

	// --- Users ---
	e.GET("/users/profile", profileHandler.Get)

	// --- Health checks, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func authRateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: authRateExpiry,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}
