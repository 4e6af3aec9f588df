package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/dog-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/dog-proxy/internal/app"
	"github.com/jsamuelsen/dog-proxy/internal/domain"
	"github.com/jsamuelsen/dog-proxy/internal/mocks"
	"github.com/jsamuelsen/dog-proxy/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newDogRouter wires the full middleware chain around a DogHandler backed by mockClient.
func newDogRouter(t *testing.T, mockClient *mocks.MockDogClient, timeout time.Duration) *gin.Engine {
	t.Helper()

	svc := app.NewDogService(app.DogServiceConfig{DogClient: mockClient, Logger: discardLogger()})
	engine := gin.New()

	SetupRouter(engine, RouterConfig{
		Logger:        discardLogger(),
		AppConfig:     &config.AppConfig{Name: "dog-proxy", Environment: "test", Version: "1.0.0"},
		HealthHandler: handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t), handlers.BuildInfo{}),
		DogHandler:    handlers.NewDogHandler(svc),
		Timeout:       timeout,
	})

	return engine
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig()
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv.Engine())
	assert.Same(t, cfg, srv.Config())
	assert.Same(t, logger, srv.logger)
	assert.Equal(t, cfg.ReadTimeout, srv.httpServer.ReadHeaderTimeout)
	assert.NotNil(t, srv.httpServer.ErrorLog, "net/http errors should reach slog")
}

// TestServerAddr covers the configured address before Start.
func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 8080, "localhost:8080"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
		{"127.0.0.1", 0, "127.0.0.1:0"},
		{"::1", 3000, "[::1]:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := testServerConfig()
			cfg.Host, cfg.Port = tt.host, tt.port

			assert.Equal(t, tt.want, New(cfg, discardLogger()).Addr())
		})
	}
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: 1 << 20,
	}
}

// TestServerStartShutdown serves a real request on the bound port, then
// checks the error channel closes cleanly after Shutdown.
func TestServerStartShutdown(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())
	srv.Engine().GET("/list", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{"pug"}})
	})

	errCh := srv.Start()
	require.NotEqual(t, "127.0.0.1:0", srv.Addr(), "Addr should report the chosen port")

	resp, err := http.Get("http://" + srv.Addr() + "/list")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":["pug"]}`, string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, ok := <-errCh:
		assert.False(t, ok, "error channel should close without a value, got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

// TestServerStart_AddressInUse reports bind failures on the channel.
func TestServerStart_AddressInUse(t *testing.T) {
	first := New(testServerConfig(), discardLogger())
	firstErrs := first.Start()
	t.Cleanup(func() {
		_ = first.Shutdown(context.Background())
		<-firstErrs
	})

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)

	cfg := testServerConfig()
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	errCh := New(cfg, discardLogger()).Start()

	select {
	case err, ok := <-errCh:
		require.True(t, ok, "expected a bind error")
		assert.ErrorContains(t, err, "listen on")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for bind error")
	}
}

// TestNewDefaultRouterConfig tests creating a default router configuration.
func TestNewDefaultRouterConfig(t *testing.T) {
	logger := discardLogger()
	appCfg := &config.AppConfig{
		Name:        "test-app",
		Environment: "test",
		Version:     "1.0.0",
	}
	healthHandler := handlers.NewHealthHandler(nil, handlers.BuildInfo{})

	cfg := NewDefaultRouterConfig(logger, appCfg, healthHandler, nil)

	assert.Equal(t, logger, cfg.Logger)
	assert.Equal(t, appCfg, cfg.AppConfig)
	assert.Equal(t, healthHandler, cfg.HealthHandler)
	assert.Equal(t, DefaultRequestTimeout, cfg.Timeout)
	assert.Nil(t, cfg.DogHandler)
}

// TestSetupMinimalRouter tests setting up a minimal router with health endpoints.
func TestSetupMinimalRouter(t *testing.T) {
	engine := gin.New()
	healthHandler := handlers.NewHealthHandler(nil, handlers.BuildInfo{
		Version: "1.0.0",
	})

	SetupMinimalRouter(engine, discardLogger(), healthHandler)

	routes := engine.Routes()
	assert.NotEmpty(t, routes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/-/live", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

// TestSetupMinimalRouterWithNilHandler tests minimal router with nil health handler.
func TestSetupMinimalRouterWithNilHandler(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupMinimalRouter(engine, discardLogger(), nil)
	})
}

// TestSetupRouter tests that health and dog routes are registered.
func TestSetupRouter(t *testing.T) {
	engine := newDogRouter(t, mocks.NewMockDogClient(t), 30*time.Second)

	routeMap := make(map[string]bool)
	for _, r := range engine.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
		"GET /list",
		"GET /pics/*breed",
	} {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}

// TestSetupRouterWithoutTimeout tests router setup with zero timeout.
func TestSetupRouterWithoutTimeout(t *testing.T) {
	require.NotPanics(t, func() {
		SetupRouter(gin.New(), RouterConfig{
			Logger:        discardLogger(),
			AppConfig:     &config.AppConfig{Name: "test-service"},
			HealthHandler: handlers.NewHealthHandler(nil, handlers.BuildInfo{}),
			Timeout:       0,
		})
	})
}

// TestSetupRouterWithNilHandlers tests router setup with no handlers or app config.
func TestSetupRouterWithNilHandlers(t *testing.T) {
	require.NotPanics(t, func() {
		SetupRouter(gin.New(), RouterConfig{Timeout: 30 * time.Second})
	})
}

func TestRouter_ListSuccess(t *testing.T) {
	mockClient := mocks.NewMockDogClient(t)
	mockClient.EXPECT().ListBreeds(mock.Anything).
		Return(&domain.BreedList{Breeds: map[string][]string{"hound": {"afghan"}}}, nil).Once()

	engine := newDogRouter(t, mockClient, 30*time.Second)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	req.Header.Set(middleware.HeaderCorrelationID, "corr-456")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"hound":["afghan"]}}`, w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, "corr-456", w.Header().Get(middleware.HeaderCorrelationID))
}

func TestRouter_IDsReachUpstreamContext(t *testing.T) {
	mockClient := mocks.NewMockDogClient(t)
	mockClient.EXPECT().GetBreedPics(mock.Anything, "labrador").
		Run(func(ctx context.Context, _ string) {
			assert.Equal(t, "req-123", middleware.RequestIDFromContext(ctx))
			assert.Equal(t, "corr-456", middleware.CorrelationIDFromContext(ctx))
		}).
		Return(&domain.BreedPics{URLs: []string{}}, nil)

	engine := newDogRouter(t, mockClient, 30*time.Second)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pics/labrador", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	req.Header.Set(middleware.HeaderCorrelationID, "corr-456")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PicsSubBreed(t *testing.T) {
	mockClient := mocks.NewMockDogClient(t)
	mockClient.EXPECT().GetBreedPics(mock.Anything, "hound/afghan").
		Return(&domain.BreedPics{URLs: []string{"u1"}}, nil).Once()

	engine := newDogRouter(t, mockClient, 30*time.Second)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pics/hound/afghan", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["u1"]}`, w.Body.String())
}

func TestRouter_UpstreamStatusPassThrough(t *testing.T) {
	mockClient := mocks.NewMockDogClient(t)
	mockClient.EXPECT().GetBreedPics(mock.Anything, "unicorn").
		Return(nil, domain.NewUpstreamError("dog-api", http.StatusNotFound, "Breed not found")).Once()

	engine := newDogRouter(t, mockClient, 30*time.Second)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pics/unicorn", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorResponse{Status: "error", Message: "Bad response"}, decodeError(t, w))
}

func TestRouter_RequestTimeout(t *testing.T) {
	mockClient := mocks.NewMockDogClient(t)
	mockClient.EXPECT().ListBreeds(mock.Anything).
		RunAndReturn(func(ctx context.Context) (*domain.BreedList, error) {
			<-ctx.Done()
			assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
			return nil, domain.NewTimeoutError("dog-api", "list breeds")
		}).Once()

	engine := newDogRouter(t, mockClient, 50*time.Millisecond)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, dto.ErrorResponse{Status: "error", Message: "Upstream timeout"}, decodeError(t, w))
}

func TestRouter_NotFound(t *testing.T) {
	engine := newDogRouter(t, mocks.NewMockDogClient(t), 30*time.Second)

	for _, path := range []string{"/nope", "/api/v1/list", "/-/nope"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, dto.ErrorResponse{Status: "error", Message: "Not found"}, decodeError(t, w))
		})
	}
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	mockClient := mocks.NewMockDogClient(t)
	mockClient.EXPECT().ListBreeds(mock.Anything).
		RunAndReturn(func(context.Context) (*domain.BreedList, error) {
			panic(errors.New("boom"))
		})

	engine := newDogRouter(t, mockClient, 30*time.Second)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorResponse{Status: "error", Message: "Internal error"}, decodeError(t, w))
}

// TestMaxBodySizeMiddleware checks oversized bodies are rejected and
// bodyless GETs pass through.
func TestMaxBodySizeMiddleware(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 100

	srv := New(cfg, discardLogger())
	srv.Engine().Any("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": len(body)})
	})

	tests := []struct {
		name       string
		method     string
		body       io.Reader
		wantStatus int
		wantBody   string
	}{
		{"GET without body", http.MethodGet, http.NoBody, http.StatusOK, `{"received":0}`},
		{"body under limit", http.MethodPost, strings.NewReader(strings.Repeat("a", 50)), http.StatusOK, `{"received":50}`},
		{"body over limit", http.MethodPost, strings.NewReader(strings.Repeat("a", 500)), http.StatusRequestEntityTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, httptest.NewRequest(tt.method, "/echo", tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
