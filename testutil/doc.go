// Package testutil provides deterministic data generators shared by tests:
// a seeded thread-safe RNG and synthetic Gaussian blob datasets.
package testutil
