// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use the domain taxonomy (ErrNetworkFailure, ErrUpstream, ...)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/dog-proxy/internal/domain"
)

// DogClient is the port to the upstream dog image API.
//
// Implementations issue exactly one upstream request per call and never retry.
// Every failure is returned as a domain error:
//   - domain.ErrNetworkFailure when no HTTP response was obtained
//   - domain.ErrTimeout when the call ran out of time
//   - domain.ErrUpstream (with the status code) for non-success statuses
//   - domain.ErrUnknownFailure for anything else, e.g. a malformed body
type DogClient interface {
	// ListBreeds fetches every breed with its sub-breeds.
	ListBreeds(ctx context.Context) (*domain.BreedList, error)

	// GetBreedPics fetches the image URLs for a breed, given as
	// "name" or "name/subbreed". The breed is not validated locally.
	GetBreedPics(ctx context.Context, breed string) (*domain.BreedPics, error)
}
