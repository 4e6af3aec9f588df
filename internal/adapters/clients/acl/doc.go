// Package acl provides the Anti-Corruption Layer between the dog.ceo API and
// the domain.
//
// # What is an Anti-Corruption Layer?
//
// The Anti-Corruption Layer (ACL) is a pattern from Domain-Driven Design that
// protects your domain model from external service representations. It acts as
// a translation boundary, ensuring that:
//
//   - External DTOs never leak into your domain
//   - Client and status failures map to domain errors
//   - Changes to external APIs don't ripple through your codebase
//
// # Package Components
//
//   - [DogCEOClient]: implements ports.DogClient and ports.HealthChecker
//   - [BaseAdapter]: embeddable GET + error handling on top of clients.Client
//   - [MapHTTPError]: client error and status code to domain error mapping
//   - [ParseErrorResponse]: dog.ceo error body parsing
//   - [DecodeResponse], [DecodeResponseForService]: bounded JSON decoding
//
// # Error Handling Strategy
//
// The ACL translates every failure into the domain taxonomy:
//   - [clients.ErrTransport] → [domain.ErrNetworkFailure]
//   - [clients.ErrTimeout] → [domain.ErrTimeout]
//   - non-2xx status → [domain.ErrUpstream] carrying the status code
//   - malformed body or missing "message" → [domain.ErrUnknownFailure]
//
// Infrastructure errors from the clients package never cross this boundary
// unwrapped.
package acl
