package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cementrack/tracking-api/internal/api/handler"
	"github.com/cementrack/tracking-api/internal/api/middleware"
	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
)

// RouterConfig carries everything the HTTP layer needs. Services are built in
// main and passed in; the router only binds them to routes.
type RouterConfig struct {
	JWTSecret string
	Logger    zerolog.Logger

	Deliveries ports.DeliveryService
	Tracking   ports.TrackingService
	Customers  ports.CustomerService
	Auth       ports.AuthService

	// Mongo and Redis are only used by the readiness probe.
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cement_tracking_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	deliveryHandler := handler.NewDeliveryHandler(cfg.Deliveries)
	trackingHandler := handler.NewTrackingHandler(cfg.Tracking)
	customerHandler := handler.NewCustomerHandler(cfg.Customers)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public tracking (no auth) ---
	e.GET("/rastrear/:tracking_code", trackingHandler.Track)

	// --- Authenticated API ---
	auth := middleware.Auth(cfg.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleOperator)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/v1", auth, anyRole)

	v1.POST("/deliveries", deliveryHandler.Create)
	v1.GET("/deliveries", deliveryHandler.List)
	v1.GET("/deliveries/stats", deliveryHandler.Stats)
	v1.GET("/deliveries/:id", deliveryHandler.Get)
	v1.PATCH("/deliveries/:id/status", deliveryHandler.UpdateStatus)
	v1.POST("/deliveries/:id/location", deliveryHandler.ReportLocation)
	v1.GET("/deliveries/:id/progress", deliveryHandler.Progress)
	v1.DELETE("/deliveries/:id", deliveryHandler.Delete, adminOnly)

	v1.POST("/customers", customerHandler.Create)
	v1.GET("/customers", customerHandler.List)
	v1.GET("/customers/:id", customerHandler.Get)
	v1.PUT("/customers/:id", customerHandler.Update)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
