// Package hyperparam implements a Cartesian grid search driver over
// VMIS-kNN's hyperparameters (m, k, N, ...): given a named grid of
// candidate values per parameter, it enumerates every combination or
// samples a bounded random subset of them.
package hyperparam
