//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/dog-proxy/internal/adapters/http"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/dog-proxy/internal/app"
	"github.com/jsamuelsen/dog-proxy/internal/platform/config"
	"github.com/jsamuelsen/dog-proxy/internal/platform/metrics"
	"github.com/jsamuelsen/dog-proxy/internal/ports"
)

// Canned dog.ceo payloads served by fakeDogAPI.
const (
	breedListBody = `{"message":{"hound":["afghan","basset"],"labrador":[],"pug":null},"status":"success"}`
	labradorBody  = `{"message":["http://a.jpg","http://b.jpg"],"status":"success"}`
	afghanBody    = `{"message":["https://images.dog.ceo/breeds/hound-afghan/n02088094_1003.jpg"],"status":"success"}`
	notFoundBody  = `{"status":"error","message":"Breed not found (main breed does not exist)","code":404}`
)

// slowDelay keeps the "slow" breed hanging past any client timeout used here.
const slowDelay = 2 * time.Second

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeDogAPI is an in-memory stand-in for dog.ceo. It counts calls per
// path and remembers the last ID headers it saw.
type fakeDogAPI struct {
	mu            sync.Mutex
	calls         map[string]int
	requestID     string
	correlationID string
}

func newFakeDogAPI() *fakeDogAPI {
	return &fakeDogAPI{calls: make(map[string]int)}
}

func (f *fakeDogAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.requestID = r.Header.Get("X-Request-ID")
	f.correlationID = r.Header.Get("X-Correlation-ID")
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/breeds/list/all":
		_, _ = io.WriteString(w, breedListBody)
	case "/labrador/images":
		_, _ = io.WriteString(w, labradorBody)
	case "/hound/afghan/images":
		_, _ = io.WriteString(w, afghanBody)
	case "/broken/images":
		_, _ = io.WriteString(w, "<html>not json</html>")
	case "/flaky/images":
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"status":"error","message":"try later","code":503}`)
	case "/slow/images":
		select {
		case <-time.After(slowDelay):
			_, _ = io.WriteString(w, labradorBody)
		case <-r.Context().Done():
		}
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, notFoundBody)
	}
}

// Calls returns how many times path was requested.
func (f *fakeDogAPI) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[path]
}

// LastIDs returns the request and correlation IDs of the latest call.
func (f *fakeDogAPI) LastIDs() (requestID, correlationID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.requestID, f.correlationID
}

// Reset forgets all recorded calls.
func (f *fakeDogAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = make(map[string]int)
	f.requestID = ""
	f.correlationID = ""
}

// stackOptions tunes the in-process proxy.
type stackOptions struct {
	clientTimeout  time.Duration
	requestTimeout time.Duration
}

// stack is a fully wired proxy in front of a fake upstream.
type stack struct {
	upstream       *fakeDogAPI
	upstreamServer *httptest.Server
	proxy          *httptest.Server
	registry       *prometheus.Registry
}

// newStack wires the proxy exactly as cmd/service does, minus signals.
func newStack(tb testing.TB, opts stackOptions) *stack {
	tb.Helper()

	if opts.clientTimeout == 0 {
		opts.clientTimeout = 200 * time.Millisecond
	}

	fake := newFakeDogAPI()
	upstream := httptest.NewServer(fake)
	tb.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     upstream.URL,
		ServiceName: config.DefaultDogAPIName,
		Timeout:     opts.clientTimeout,
		Logger:      logger,
	})
	if err != nil {
		tb.Fatalf("creating client: %v", err)
	}

	dogClient := acl.NewDogCEOClient(acl.DogCEOClientConfig{Client: httpClient, Logger: logger})

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(dogClient); err != nil {
		tb.Fatalf("registering health check: %v", err)
	}

	registry := prometheus.NewRegistry()
	service := app.NewDogService(app.DogServiceConfig{
		DogClient: dogClient,
		Metrics:   metrics.NewRecorder(metrics.WithRegistry(registry)),
		Logger:    logger,
	})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:    logger,
		AppConfig: &config.AppConfig{Name: "dog-proxy", Version: "test", Environment: "test"},
		HealthHandler: handlers.NewHealthHandler(
			healthRegistry,
			handlers.NewBuildInfo("test", "none", "never"),
			handlers.WithGatherer(registry),
		),
		DogHandler: handlers.NewDogHandler(service),
		Timeout:    opts.requestTimeout,
	})

	proxy := httptest.NewServer(engine)
	tb.Cleanup(proxy.Close)

	return &stack{upstream: fake, upstreamServer: upstream, proxy: proxy, registry: registry}
}

// get issues a GET against the proxy with optional header pairs.
func (s *stack) get(ctx context.Context, path string, headers ...string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.proxy.URL+path, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.proxy.Client().Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading body: %w", err)
	}

	return resp, body, nil
}

// upstreamPath maps a proxy path onto the path the fake upstream sees.
func upstreamPath(proxyPath string) string {
	if breed, ok := strings.CutPrefix(proxyPath, "/pics/"); ok {
		return "/" + breed + "/images"
	}

	return "/breeds/list/all"
}
