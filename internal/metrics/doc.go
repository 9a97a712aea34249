// Package metrics exposes Prometheus instrumentation for the recommender
// service: predict latency, index build duration, candidate-pool and
// neighbor-set sizes, session-store cache efficiency, and HTTP endpoint
// latency. All series are registered at package init via promauto and
// are safe for concurrent use.
package metrics
