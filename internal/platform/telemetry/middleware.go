package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/dog-proxy/telemetry"

	// TraceIDHeader carries the active trace ID back to the caller.
	TraceIDHeader = "X-Trace-ID"
)

// serverInstruments are the OTel instruments recorded per inbound request.
type serverInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

func newServerInstruments(mp metric.MeterProvider) (*serverInstruments, error) {
	meter := mp.Meter(instrumentationName)

	duration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of proxied HTTP requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Proxied HTTP requests by route and status"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Proxied HTTP requests in flight"),
	)
	if err != nil {
		return nil, err
	}

	return &serverInstruments{duration: duration, total: total, active: active}, nil
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	meterProvider metric.MeterProvider
}

// WithMeterProvider records into mp instead of the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.meterProvider = mp
	}
}

// Middleware returns Gin middleware that joins the active span to the rest of
// the request: it echoes the trace ID in X-Trace-ID, adds trace_id to the
// context logger, and records request metrics. It must run after
// TracingMiddleware so a span is already on the request context.
func Middleware(opts ...MiddlewareOption) gin.HandlerFunc {
	cfg := middlewareConfig{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&cfg)
	}

	instruments, err := newServerInstruments(cfg.meterProvider)
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()

		// Headers must be set before the handler writes the body.
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			traceID := sc.TraceID().String()
			c.Header(TraceIDHeader, traceID)
			c.Request = c.Request.WithContext(logging.WithTraceID(c.Request.Context(), traceID))
		}

		if instruments == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.request.method", c.Request.Method)

		inFlight := metric.WithAttributes(method, route)
		instruments.active.Add(ctx, 1, inFlight)
		defer instruments.active.Add(ctx, -1, inFlight)

		c.Next()

		done := metric.WithAttributes(method, route, attribute.Int("http.response.status_code", c.Writer.Status()))
		instruments.duration.Record(ctx, time.Since(start).Seconds(), done)
		instruments.total.Add(ctx, 1, done)
	}
}

// TracingMiddleware returns the otelgin tracing middleware.
func TracingMiddleware(serviceName string, opts ...otelgin.Option) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, opts...)
}
