package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/dog-proxy/internal/platform/config"
	"github.com/jsamuelsen/dog-proxy/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the base logger stored on every request context.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// DogHandler handles the proxied dog endpoints.
	DogHandler *handlers.DogHandler

	// Timeout is the request deadline for the dog endpoints. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - base logger on the request context
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle distributed tracing correlation
//  5. OpenTelemetry - tracing, then metrics and the X-Trace-ID header
//  6. Logging - request logging (skips health endpoints)
//  7. Timeout - request deadline (dog routes only)
//
// Route groups:
//   - /-/ (internal): health, build info, and metrics; no timeout for probes
//   - / (public): /list and /pics/*breed
//
// Unknown routes answer 404 with the standard error body.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceName := "dog-proxy"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(serviceName),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/")
	if cfg.Timeout > 0 {
		api.Use(middleware.RequestTimeout(cfg.Timeout))
	}

	if cfg.DogHandler != nil {
		cfg.DogHandler.RegisterDogRoutes(api)
	}

	engine.NoRoute(notFound)
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	engine.NoRoute(notFound)
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	dogHandler *handlers.DogHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		DogHandler:    dogHandler,
		Timeout:       DefaultRequestTimeout,
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.MessageNotFound))
}
