/*
Package middleware provides HTTP middleware components for the recommender
service's HTTP API.

This package implements infrastructure middleware for compression, performance
monitoring, request ID tracking, and Prometheus metrics integration.

Key Components:

  - Compression: Gzip compression for responses of any size
  - Performance Monitor: Request latency tracking with percentile calculations
  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation

Middleware Stack:

The typical middleware stack for an endpoint is:

	http.HandleFunc("/v1/recommend",
	    middleware.PrometheusMetrics( // Layer 1: Metrics
	        middleware.Compression(    // Layer 2: Gzip
	            middleware.RequestID(  // Layer 3: Request tracking
	                handler,           // Layer 4: Business logic
	            ),
	        ),
	    ),
	)

Usage Example - Compression:

	import "github.com/sessionml/vmisknn/internal/middleware"

	// Wrap handler with gzip compression
	http.HandleFunc("/api/v1/data",
	    middleware.Compression(handler),
	)

	// Responses of any size are automatically compressed
	// Accept-Encoding: gzip header is required

Usage Example - Performance Monitoring:

	// Create a performance monitor with a 1000-sample rolling window
	perfMon := middleware.NewPerformanceMonitor(1000)

	// Wrap handler
	http.Handle("/v1/recommend",
	    perfMon.Middleware(handler),
	)

	// Get per-endpoint statistics
	for _, stat := range perfMon.GetStats() {
	    fmt.Printf("%s p50=%dms p95=%dms p99=%dms\n",
	        stat.Path, stat.P50Duration, stat.P95Duration, stat.P99Duration)
	}

Usage Example - Request ID:

	// Request ID middleware
	http.HandleFunc("/v1/recommend",
	    middleware.RequestID(handler),
	)

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    logging.Ctx(r.Context()).Info().Str("request_id", requestID).Msg("handling request")
	}

Compression Details:

The compression middleware:
  - Supports gzip encoding (Accept-Encoding: gzip)
  - Skips WebSocket upgrade requests
  - Pools gzip writers via sync.Pool to reduce allocation churn
  - Automatically sets Content-Encoding and clears Content-Length

Performance Monitor:

The performance monitor tracks:
  - Per-endpoint request count and latency percentiles (p50, p95, p99)
  - A rolling window of the N most recent requests (caller-configured)
  - Thread-safe concurrent access with sync.RWMutex

Thread Safety:

All middleware components are thread-safe:
  - Compression uses a pooled gzip.Writer per request
  - Performance monitor uses sync.RWMutex
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use the client_golang atomic counters/histograms

See Also:

  - internal/httpapi: HTTP handlers wrapped by this middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
