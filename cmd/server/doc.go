// Package main is the entry point for the VMIS-kNN recommender server.
//
// # Application Architecture
//
// Component initialization order:
//
//  1. Configuration: Koanf v2 with environment variables and an optional
//     config file (internal/config).
//  2. Logging: zerolog with JSON/console output modes (internal/logging).
//  3. Training corpus: read and ingest the events file, build the
//     offline VMIS-kNN index (internal/vmisknn).
//  4. Snapshot storage (optional): load a persisted index snapshot on
//     startup instead of rebuilding, and periodically persist new
//     builds (internal/vmisknn/storage).
//  5. Session store: in-memory or BadgerDB-backed evolving-session
//     tracking (internal/sessionstore).
//  6. HTTP server: chi router serving /v1/recommend (internal/httpapi).
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables (VMISKNN_* prefix) > config
// file (config.yaml) > built-in defaults. See internal/config.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests to complete,
// and stops the background index-rebuild loop (if enabled).
package main
