package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/dog-proxy/internal/domain"
	"github.com/jsamuelsen/dog-proxy/internal/ports"
)

var (
	_ ports.DogClient     = (*DogCEOClient)(nil)
	_ ports.HealthChecker = (*DogCEOClient)(nil)
)

func newTestHTTPClient(t *testing.T, baseURL string, timeout time.Duration) *clients.Client {
	t.Helper()

	client, err := clients.New(&clients.Config{
		ServiceName: "dog-api",
		BaseURL:     baseURL,
		Timeout:     timeout,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return client
}

// setupDogClient creates a DogCEOClient backed by a test HTTP server.
func setupDogClient(t *testing.T, handler http.HandlerFunc) *DogCEOClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewDogCEOClient(DogCEOClientConfig{
		Client: newTestHTTPClient(t, server.URL, 5*time.Second),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := io.WriteString(w, body)
	assert.NoError(t, err)
}

func TestNewDogCEOClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		NewDogCEOClient(DogCEOClientConfig{Logger: slog.Default()})
	})
}

func TestNewDogCEOClient_DefaultsLogger(t *testing.T) {
	c := NewDogCEOClient(DogCEOClientConfig{
		Client: newTestHTTPClient(t, "http://127.0.0.1:1", time.Second),
	})

	require.NotNil(t, c.logger)
	assert.Equal(t, "dog-api", c.ServiceName())
}

func TestDogCEOClient_Name(t *testing.T) {
	c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t, "dog-api", c.Name())
}

func TestListBreeds_Success(t *testing.T) {
	c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/breeds/list/all", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		writeJSON(t, w, http.StatusOK,
			`{"message":{"hound":["afghan","basset"],"labrador":[]},"status":"success"}`)
	})

	list, err := c.ListBreeds(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"hound":    {"afghan", "basset"},
		"labrador": {},
	}, list.Breeds)
}

func TestListBreeds_NullSubBreedsBecomeEmpty(t *testing.T) {
	c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"message":{"pug":null},"status":"success"}`)
	})

	list, err := c.ListBreeds(context.Background())

	require.NoError(t, err)
	require.Contains(t, list.Breeds, "pug")
	assert.NotNil(t, list.Breeds["pug"])
	assert.Empty(t, list.Breeds["pug"])
}

func TestGetBreedPics_Success(t *testing.T) {
	c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/labrador/images", r.URL.Path)

		writeJSON(t, w, http.StatusOK,
			`{"message":["https://images.dog.ceo/breeds/labrador/1.jpg","https://images.dog.ceo/breeds/labrador/2.jpg"],"status":"success"}`)
	})

	pics, err := c.GetBreedPics(context.Background(), "labrador")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://images.dog.ceo/breeds/labrador/1.jpg",
		"https://images.dog.ceo/breeds/labrador/2.jpg",
	}, pics.URLs)
}

func TestGetBreedPics_EmptyMessage(t *testing.T) {
	c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"message":[],"status":"success"}`)
	})

	pics, err := c.GetBreedPics(context.Background(), "labrador")

	require.NoError(t, err)
	assert.NotNil(t, pics.URLs)
	assert.Empty(t, pics.URLs)
}

func TestGetBreedPics_Paths(t *testing.T) {
	tests := []struct {
		name     string
		breed    string
		wantPath string
	}{
		{name: "breed", breed: "labrador", wantPath: "/labrador/images"},
		{name: "sub-breed", breed: "hound/afghan", wantPath: "/hound/afghan/images"},
		{name: "space is escaped", breed: "great dane", wantPath: "/great%20dane/images"},
		{name: "query characters are escaped", breed: "pug?x=1", wantPath: "/pug%3Fx=1/images"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.EscapedPath()
				assert.Empty(t, r.URL.RawQuery)
				writeJSON(t, w, http.StatusOK, `{"message":[],"status":"success"}`)
			})

			_, err := c.GetBreedPics(context.Background(), tt.breed)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestGetBreedPics_UpstreamNotFound(t *testing.T) {
	c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound,
			`{"status":"error","message":"Breed not found (main breed does not exist)","code":404}`)
	})

	_, err := c.GetBreedPics(context.Background(), "unicorn")

	require.Error(t, err)
	assert.True(t, domain.IsUpstream(err), "expected UpstreamError, got %v", err)

	status, ok := domain.UpstreamStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "Breed not found (main breed does not exist)", upstreamErr.Message)
}

func TestListBreeds_ServerErrorSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.ListBreeds(context.Background())

	require.Error(t, err)
	status, ok := domain.UpstreamStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, int32(1), calls.Load(), "no retries")
}

func TestGetBreedPics_ErrorBodyLoggedTruncated(t *testing.T) {
	long := strings.Repeat("x", 4*maxErrorBodyBytes)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, long)
	}))
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	c := NewDogCEOClient(DogCEOClientConfig{
		Client: newTestHTTPClient(t, server.URL, 5*time.Second),
		Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
	})

	_, err := c.GetBreedPics(context.Background(), "labrador")
	require.Error(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "upstream error response", entry["msg"])
	assert.InDelta(t, http.StatusInternalServerError, entry["status_code"], 0)
	assert.Len(t, entry["body"], maxErrorBodyBytes)
}

func TestDogCEOClient_MalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(c *DogCEOClient) error
	}{
		{
			name: "pics invalid json",
			body: `not json`,
			call: func(c *DogCEOClient) error {
				_, err := c.GetBreedPics(context.Background(), "labrador")
				return err
			},
		},
		{
			name: "pics message missing",
			body: `{"status":"success"}`,
			call: func(c *DogCEOClient) error {
				_, err := c.GetBreedPics(context.Background(), "labrador")
				return err
			},
		},
		{
			name: "pics message null",
			body: `{"message":null,"status":"success"}`,
			call: func(c *DogCEOClient) error {
				_, err := c.GetBreedPics(context.Background(), "labrador")
				return err
			},
		},
		{
			name: "pics message wrong type",
			body: `{"message":{"a":[]},"status":"success"}`,
			call: func(c *DogCEOClient) error {
				_, err := c.GetBreedPics(context.Background(), "labrador")
				return err
			},
		},
		{
			name: "list message missing",
			body: `{}`,
			call: func(c *DogCEOClient) error {
				_, err := c.ListBreeds(context.Background())
				return err
			},
		},
		{
			name: "list message wrong type",
			body: `{"message":["a"],"status":"success"}`,
			call: func(c *DogCEOClient) error {
				_, err := c.ListBreeds(context.Background())
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, tt.body)
			})

			err := tt.call(c)

			require.Error(t, err)
			assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
			assert.True(t, domain.IsUnknownFailure(err))
		})
	}
}

func TestDogCEOClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	c := NewDogCEOClient(DogCEOClientConfig{
		Client: newTestHTTPClient(t, server.URL, 50*time.Millisecond),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	_, err := c.ListBreeds(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsTimeout(err), "expected TimeoutError, got %v", err)

	var timeoutErr *domain.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "list breeds", timeoutErr.Operation)
}

func TestDogCEOClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewDogCEOClient(DogCEOClientConfig{
		Client: newTestHTTPClient(t, url, time.Second),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	_, err := c.GetBreedPics(context.Background(), "labrador")

	require.Error(t, err)
	assert.True(t, domain.IsNetworkFailure(err), "expected NetworkError, got %v", err)
	assert.ErrorIs(t, err, clients.ErrTransport)
}

func TestDogCEOClient_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/breeds/list/all", r.URL.Path)
			writeJSON(t, w, http.StatusOK, `{"message":{},"status":"success"}`)
		})

		assert.NoError(t, c.Check(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		c := setupDogClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		err := c.Check(context.Background())

		require.Error(t, err)
		assert.True(t, domain.IsUpstream(err))
	})
}

func TestBreedPicsPath(t *testing.T) {
	assert.Equal(t, "/labrador/images", breedPicsPath("labrador"))
	assert.Equal(t, "/hound/afghan/images", breedPicsPath("hound/afghan"))
	assert.Equal(t, "/a%25b/images", breedPicsPath("a%b"))
}
