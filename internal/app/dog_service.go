// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters)
//   - Upstream DTOs and status codes (that's the ACL)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/dog-proxy/internal/domain"
	"github.com/jsamuelsen/dog-proxy/internal/platform/logging"
	"github.com/jsamuelsen/dog-proxy/internal/platform/metrics"
	"github.com/jsamuelsen/dog-proxy/internal/ports"
)

// Operation names used in logs and metric labels.
const (
	OperationListBreeds   = "list_breeds"
	OperationGetBreedPics = "breed_pics"
)

// DogServiceConfig contains the dependencies of the dog service.
type DogServiceConfig struct {
	// DogClient is the upstream port. Required.
	DogClient ports.DogClient

	// Metrics records one outcome per call. Optional.
	Metrics *metrics.Recorder

	// Logger is used when the request context carries no logger.
	Logger *slog.Logger
}

// DogService orchestrates the dog image use cases.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type DogService struct {
	dogClient ports.DogClient
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// NewDogService creates a new dog service.
// Panics if DogClient is nil. Defaults logger to slog.Default() if nil.
func NewDogService(cfg DogServiceConfig) *DogService {
	if cfg.DogClient == nil {
		panic("DogService: DogClient is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DogService{
		dogClient: cfg.DogClient,
		metrics:   cfg.Metrics,
		logger:    logger.With(slog.String("component", "app.DogService")),
	}
}

// ListBreeds returns every breed with its sub-breeds.
// Errors keep their domain classification.
func (s *DogService) ListBreeds(ctx context.Context) (*domain.BreedList, error) {
	logger := s.loggerFor(ctx).With(slog.String("operation", OperationListBreeds))
	logger.DebugContext(ctx, "fetching breed list")

	start := time.Now()
	list, err := s.dogClient.ListBreeds(ctx)
	s.observe(OperationListBreeds, err, time.Since(start))

	if err != nil {
		logger.WarnContext(ctx, "failed to fetch breed list",
			slog.String("kind", string(domain.KindOf(err))),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing breeds: %w", err)
	}

	logger.DebugContext(ctx, "fetched breed list", slog.Int("breeds", len(list.Breeds)))

	return list, nil
}

// GetBreedPics returns the image URLs for breed ("name" or "name/subbreed").
// The breed is passed through unvalidated.
func (s *DogService) GetBreedPics(ctx context.Context, breed string) (*domain.BreedPics, error) {
	logger := s.loggerFor(ctx).With(
		slog.String("operation", OperationGetBreedPics),
		slog.String("breed", breed),
	)
	logger.DebugContext(ctx, "fetching breed pics")

	start := time.Now()
	pics, err := s.dogClient.GetBreedPics(ctx, breed)
	s.observe(OperationGetBreedPics, err, time.Since(start))

	if err != nil {
		logger.WarnContext(ctx, "failed to fetch breed pics",
			slog.String("kind", string(domain.KindOf(err))),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetching pics for %q: %w", breed, err)
	}

	logger.DebugContext(ctx, "fetched breed pics", slog.Int("urls", len(pics.URLs)))

	return pics, nil
}

func (s *DogService) loggerFor(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

// observe records the call outcome: "success" or the failure kind.
func (s *DogService) observe(operation string, err error, elapsed time.Duration) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = string(domain.KindOf(err))
	}

	s.metrics.ObserveUpstream(operation, outcome, elapsed)
}
