package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jsamuelsen/dog-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/dog-proxy/internal/domain"
	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
)

const (
	// HealthCheckName identifies the dog API in readiness results.
	HealthCheckName = "dog-api"

	breedListPath = "/breeds/list/all"

	opListBreeds   = "list breeds"
	opGetBreedPics = "get breed pics"
)

// errMissingMessage is the cause when a success body has no "message" field.
var errMissingMessage = errors.New(`missing "message" field`)

// DogCEOClientConfig contains configuration for the dog.ceo client.
type DogCEOClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should point at the dog.ceo API root.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// DogCEOClient implements ports.DogClient and ports.HealthChecker on top of
// the dog.ceo REST API.
type DogCEOClient struct {
	BaseAdapter
}

// NewDogCEOClient creates a new dog.ceo adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewDogCEOClient(cfg DogCEOClientConfig) *DogCEOClient {
	if cfg.Client == nil {
		panic("DogCEOClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DogCEOClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, logger.With(slog.String("component", "acl.DogCEOClient"))),
	}
}

// picsResponse is the dog.ceo payload for /{breed}/images.
// The pointer distinguishes an absent or null message from an empty one.
type picsResponse struct {
	Message *[]string `json:"message"`
	Status  string    `json:"status"`
}

// listResponse is the dog.ceo payload for /breeds/list/all.
type listResponse struct {
	Message *map[string][]string `json:"message"`
	Status  string               `json:"status"`
}

// ListBreeds fetches every breed with its sub-breeds.
// Implements ports.DogClient.
func (c *DogCEOClient) ListBreeds(ctx context.Context) (*domain.BreedList, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", breedListPath))

	body, err := c.Get(ctx, breedListPath, opListBreeds)
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponseForService[listResponse](body, c.serviceName, opListBreeds)
	if err != nil {
		return nil, err
	}

	if ext.Message == nil {
		return nil, domain.NewUnknownError(opListBreeds, errMissingMessage)
	}

	list := translateBreedList(*ext.Message)

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.Int("breeds", len(list.Breeds)))

	return list, nil
}

// GetBreedPics fetches the image URLs for breed ("name" or "name/subbreed").
// Implements ports.DogClient.
func (c *DogCEOClient) GetBreedPics(ctx context.Context, breed string) (*domain.BreedPics, error) {
	path := breedPicsPath(breed)
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("path", path),
		slog.String("breed", breed))

	body, err := c.Get(ctx, path, opGetBreedPics)
	if err != nil {
		return nil, err
	}

	ext, err := DecodeResponseForService[picsResponse](body, c.serviceName, opGetBreedPics)
	if err != nil {
		return nil, err
	}

	if ext.Message == nil {
		return nil, domain.NewUnknownError(opGetBreedPics, errMissingMessage)
	}

	pics := &domain.BreedPics{URLs: *ext.Message}
	if pics.URLs == nil {
		pics.URLs = []string{}
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.String("breed", breed),
		slog.Int("urls", len(pics.URLs)))

	return pics, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *DogCEOClient) Name() string {
	return HealthCheckName
}

// Check reports the upstream healthy when the breed list can be fetched.
// Implements ports.HealthChecker.
func (c *DogCEOClient) Check(ctx context.Context) error {
	_, err := c.ListBreeds(ctx)
	return err
}

// breedPicsPath escapes each "/"-separated segment of breed.
func breedPicsPath(breed string) string {
	segments := strings.Split(breed, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return "/" + strings.Join(segments, "/") + "/images"
}

// translateBreedList converts the upstream mapping to a domain BreedList.
// A null sub-breed list becomes an empty one.
func translateBreedList(ext map[string][]string) *domain.BreedList {
	breeds := make(map[string][]string, len(ext))
	for name, subs := range ext {
		if subs == nil {
			subs = []string{}
		}
		breeds[name] = subs
	}

	return &domain.BreedList{Breeds: breeds}
}
