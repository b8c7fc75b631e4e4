// Package backend provides the Fitcheck API server.

// This package contains the module documentation. The actual API
// is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Session verification and user resolution
// - internal/collections: Saved-collection merge logic and store
// - internal/client: Client-side mutation, gating and pagination
// - internal/storage: File storage (S3) operations
// - internal/database: Database connection and migrations
// - internal/cache: Redis-backed counters
// - internal/middleware: HTTP middleware (request IDs, metrics, logging)
// - internal/metrics: Prometheus metric definitions
// - internal/seed: Development and test data seeding

// See the individual package documentation for detailed API reference.
package backend
