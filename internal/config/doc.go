// Package config holds all application configuration for the VMIS-kNN
// recommender service, loaded from environment variables and an optional
// YAML config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for every setting.
//  2. Config File: optional YAML config file (config.yaml), if present.
//  3. Environment Variables: override any setting.
//
// Configuration Categories:
//
//  1. Model: VMIS-kNN hyperparameters (m, k, N, IDF exponent, business
//     rules) — see internal/vmisknn.Config, which this package builds.
//  2. Training: where the training corpus and optional item-attribute
//     file live, and how often to rebuild the index.
//  3. Storage: where built-index snapshots are persisted.
//  4. Session store: in-memory vs. BadgerDB-backed evolving-session
//     storage.
//  5. Server: HTTP listen address and timeouts.
//  6. Logging: log level and output format.
//
// Example - load configuration from environment and an optional file:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
