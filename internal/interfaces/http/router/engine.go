package router

import (
	"fmt"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/auth"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/erp/accounting/internal/infrastructure/logger"
	"github.com/erp/accounting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Unauthenticated, untraced endpoints outside the API group
const (
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

// Options configures the engine
type Options struct {
	ServiceName      string
	HTTP             config.HTTPConfig
	TracingEnabled   bool
	ProfilingEnabled bool
	Logger           *zap.Logger

	Tokens      middleware.TokenValidator
	Blacklist   auth.TokenBlacklist
	Idempotency shared.IdempotencyStore

	// Meter records OpenTelemetry HTTP metrics; nil disables them
	Meter metric.Meter
	// Registerer receives the Prometheus HTTP collectors; nil disables them
	Registerer prometheus.Registerer
}

// Engine is the configured gin engine together with the resources it owns
type Engine struct {
	*gin.Engine
	limiter *middleware.RateLimiter
}

// Close stops background work started by the middleware
func (e *Engine) Close() {
	if e.limiter != nil {
		e.limiter.Stop()
	}
}

// New builds the engine: global middleware in request order, the probe endpoints,
// then the authenticated API group with every resource.
func New(opts Options, h Handlers) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	e := &Engine{Engine: engine}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: opts.ServiceName,
			Enabled:     opts.TracingEnabled,
			SkipPaths:   []string{HealthPath, MetricsPath},
		}),
		logger.GinMiddleware(log),
		middleware.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(opts.HTTP)),
	)
	if opts.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))
	}
	if opts.HTTP.RateLimitEnabled {
		e.limiter = middleware.NewRateLimiter(opts.HTTP.RateLimitRequests, opts.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(e.limiter))
	}
	if opts.Registerer != nil {
		prom, err := middleware.NewPrometheusHTTPMetrics(opts.Registerer)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to register HTTP metrics: %w", err)
		}
		engine.Use(prom.Middleware())
	}
	engine.Use(
		middleware.HTTPMetrics(opts.Meter, log),
		middleware.Profiling(opts.ProfilingEnabled),
	)

	engine.GET(HealthPath, h.System.Health)
	engine.GET(MetricsPath, h.System.Metrics)

	r := NewRouter(engine)
	skip := make([]string, len(publicAPIPaths))
	for i, p := range publicAPIPaths {
		skip[i] = r.APIPath(p)
	}
	r.middleware = append(r.middleware,
		middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			Validator: opts.Tokens,
			Blacklist: opts.Blacklist,
			SkipPaths: skip,
			Logger:    log,
		}),
		middleware.SpanEnricher(),
	)

	idempotent := func(c *gin.Context) { c.Next() }
	if opts.Idempotency != nil {
		idempotent = middleware.Idempotency(opts.Idempotency, opts.HTTP.IdempotencyTTL, log)
	}
	for _, g := range domainGroups(h, idempotent) {
		r.Register(g)
	}
	r.Setup()

	return e, nil
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}
